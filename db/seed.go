package db

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	authhelpers "business-trips-backend/lib/utils/auth-helpers"
	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

// SeedDB создает стартовых пользователей и тестовую командировку,
// если база пустая.
func SeedDB() error {
	var userCount int64
	if err := DB.Model(&dbmodels.User{}).Count(&userCount).Error; err != nil {
		return errors.Wrap(err, "ошибка проверки наличия пользователей")
	}
	if userCount > 0 {
		return nil
	}
	log.Info("Создание стартовых пользователей")

	admin := dbmodels.User{
		UserName:   "admin",
		Password:   authhelpers.GetMD5Hash("admin123"),
		FullName:   "Администратор Системы",
		Role:       models.RoleAdmin,
		Department: "ИТ",
	}
	grManager := dbmodels.User{
		UserName:   "gr_manager",
		Password:   authhelpers.GetMD5Hash("gr123"),
		FullName:   "Главный Руководитель",
		Role:       models.RoleTopManager,
		Department: "Руководство",
	}
	if err := DB.Create(&admin).Error; err != nil {
		return errors.Wrap(err, "ошибка создания администратора")
	}
	if err := DB.Create(&grManager).Error; err != nil {
		return errors.Wrap(err, "ошибка создания главного руководителя")
	}

	manager := dbmodels.User{
		UserName:   "manager",
		Password:   authhelpers.GetMD5Hash("manager123"),
		FullName:   "Руководитель Отдела",
		Role:       models.RoleManager,
		ManagerID:  &grManager.ID,
		Department: "Отдел разработки",
	}
	if err := DB.Create(&manager).Error; err != nil {
		return errors.Wrap(err, "ошибка создания руководителя")
	}
	employee := dbmodels.User{
		UserName:   "employee",
		Password:   authhelpers.GetMD5Hash("employee123"),
		FullName:   "Сотрудник Тестовый",
		Role:       models.RoleEmployee,
		ManagerID:  &manager.ID,
		Department: "Отдел разработки",
	}
	if err := DB.Create(&employee).Error; err != nil {
		return errors.Wrap(err, "ошибка создания сотрудника")
	}

	trip := dbmodels.BusinessTrip{
		TripNumber:     "BT-20250101-0001",
		Status:         models.TripStatusPlanned,
		EmployeeID:     employee.ID,
		ManagerID:      &manager.ID,
		Department:     "Отдел разработки",
		StartDate:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		Duration:       6,
		Destination:    "Москва",
		Purpose:        "Участие в конференции",
		EstimatedCosts: decimal.NewFromInt(15000),
	}
	if err := DB.Create(&trip).Error; err != nil {
		return errors.Wrap(err, "ошибка создания тестовой командировки")
	}
	log.Info("Стартовые данные созданы")
	return nil
}
