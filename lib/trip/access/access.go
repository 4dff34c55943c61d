package tripaccess

import (
	"gorm.io/gorm"

	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

// Scope сужает запрос по командировкам до видимых пользователю.
// Единая точка для дашборда, списков, планирования и отчетов.
func Scope(tx *gorm.DB, user dbmodels.User, subordinateIDs []string) *gorm.DB {
	switch {
	case user.Role.IsOversight():
		return tx
	case user.Role == models.RoleManager:
		ids := append([]string{user.ID}, subordinateIDs...)
		return tx.Where("employee_id IN ?", ids)
	case user.Role == models.RoleEmployee:
		return tx.Where("employee_id = ?", user.ID)
	case user.Role == models.RoleProcurement:
		return tx.Where("procurement_needed = ?", true)
	}
	return tx
}

// CanView проверяет доступ к отдельной заявке по тем же правилам.
func CanView(user dbmodels.User, subordinateIDs []string, trip dbmodels.BusinessTrip) bool {
	switch {
	case user.Role.IsOversight():
		return true
	case user.Role == models.RoleManager:
		if trip.EmployeeID == user.ID {
			return true
		}
		for _, id := range subordinateIDs {
			if trip.EmployeeID == id {
				return true
			}
		}
		return false
	case user.Role == models.RoleEmployee:
		return trip.EmployeeID == user.ID
	case user.Role == models.RoleProcurement:
		return trip.ProcurementNeeded
	}
	return false
}
