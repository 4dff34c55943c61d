package models

import "business-trips-backend/lib/utils/apperrors"

type UserRole string

const (
	RoleAdmin             UserRole = "A"
	RoleSecurity          UserRole = "B"
	RoleAccounting        UserRole = "BU"
	RoleTopManager        UserRole = "GR"
	RoleManager           UserRole = "R"
	RoleEmployee          UserRole = "S"
	RoleHR                UserRole = "K"
	RoleTravelCoordinator UserRole = "TK"
	RoleProcurement       UserRole = "Z"
)

var roleHumanName = map[UserRole]string{
	RoleAdmin:             "Администратор",
	RoleSecurity:          "Отдел безопасности",
	RoleAccounting:        "Бухгалтерия",
	RoleTopManager:        "Главный руководитель",
	RoleManager:           "Руководитель",
	RoleEmployee:          "Сотрудник",
	RoleHR:                "Отдел кадров",
	RoleTravelCoordinator: "Travel-координатор",
	RoleProcurement:       "Отдел закупок",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) Validate() error {
	if _, exist := roleHumanName[r]; !exist {
		return apperrors.Errorf("неизвестная роль: %v", r)
	}
	return nil
}

// IsOversight проверяет что роль видит все командировки.
func (r UserRole) IsOversight() bool {
	switch r {
	case RoleAdmin, RoleSecurity, RoleAccounting, RoleTopManager, RoleHR, RoleTravelCoordinator:
		return true
	}
	return false
}

func (r UserRole) IsManagement() bool {
	return r == RoleManager || r == RoleTopManager
}

// CanHaveSubordinates проверяет что роль допустима в качестве руководителя.
func (r UserRole) CanHaveSubordinates() bool {
	return r == RoleManager || r == RoleTopManager
}

const SystemUser = "Система"
