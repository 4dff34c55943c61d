package initializers

import (
	"business-trips-backend/config"
	"business-trips-backend/db"
)

func InitDBConnection() {
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}

	if *config.Conf.Database.SeedOnStart {
		if err = db.SeedDB(); err != nil {
			panic(err.Error())
		}
	}
}
