package initializers

import (
	"context"

	"business-trips-backend/config"
	"business-trips-backend/fiberlog"
	authhandler "business-trips-backend/lib/auth"
	documenthandler "business-trips-backend/lib/document"
	employeehandler "business-trips-backend/lib/employee"
	escalationworker "business-trips-backend/lib/escalation"
	xlsexport "business-trips-backend/lib/export/xls"
	notifyhandler "business-trips-backend/lib/notify"
	reporthandler "business-trips-backend/lib/report"
	triphandler "business-trips-backend/lib/trip"
	tripcosthandler "business-trips-backend/lib/trip-cost"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	notifyhandler.NewHandler()
	authhandler.NewHandler()
	employeehandler.NewHandler()
	triphandler.NewHandler()
	tripcosthandler.NewHandler()
	documenthandler.NewHandler()
	xlsexport.NewHandler()
	reporthandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача переадресации просроченных согласований
	escalationworker.StartWorker(ctx)
}
