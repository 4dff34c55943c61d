package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "business-trips-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.BusinessTrip{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BusinessTrip")
	}
	if err := DB.AutoMigrate(&dbmodels.TripDocument{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TripDocument")
	}
	if err := DB.AutoMigrate(&dbmodels.TripCost{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TripCost")
	}
	if err := DB.AutoMigrate(&dbmodels.GeoLocationHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры GeoLocationHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
