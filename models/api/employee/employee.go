package employeeapimodels

import (
	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

type EmployeeData struct {
	UserName     string          `json:"user_name"`     // имя пользователя для входа
	Password     string          `json:"password"`      // пароль (при обновлении пустое значение оставляет прежний)
	FullName     string          `json:"full_name"`     // ФИО
	Role         models.UserRole `json:"role"`          // роль
	ManagerID    string          `json:"manager_id"`    // ид руководителя
	Department   string          `json:"department"`    // подразделение
	PassportData string          `json:"passport_data"` // паспортные данные
	Email        string          `json:"email"`         // почта для уведомлений
}

func (r EmployeeData) Validate() error {
	if r.UserName == "" {
		return apperrors.New("не указано имя пользователя")
	}
	if r.FullName == "" {
		return apperrors.New("не указано ФИО")
	}
	if err := r.Role.Validate(); err != nil {
		return err
	}
	return nil
}

type EmployeeCreateData struct {
	EmployeeData
}

func (r EmployeeCreateData) Validate() error {
	if err := r.EmployeeData.Validate(); err != nil {
		return err
	}
	if r.Password == "" {
		return apperrors.New("не указан пароль")
	}
	return nil
}

type EmployeeView struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	RoleName     string `json:"role_name"`
	ManagerID    string `json:"manager_id,omitempty"`
	ManagerName  string `json:"manager_name,omitempty"`
	Department   string `json:"department,omitempty"`
	PassportData string `json:"passport_data,omitempty"`
	Email        string `json:"email,omitempty"`
}

func EmployeeConvert(rec dbmodels.User) EmployeeView {
	view := EmployeeView{
		ID:           rec.ID,
		UserName:     rec.UserName,
		FullName:     rec.FullName,
		Role:         string(rec.Role),
		RoleName:     rec.Role.ToHuman(),
		ManagerID:    rec.GetManagerID(),
		Department:   rec.Department,
		PassportData: rec.PassportData,
		Email:        rec.Email,
	}
	if rec.Manager != nil {
		view.ManagerName = rec.Manager.FullName
	}
	return view
}
