package tripapimodels

import (
	apimodels "business-trips-backend/models/api"
)

type TripFilter struct {
	apimodels.Pagination
	ProjectNumber string `json:"project_number"` // вхождение в номер проекта
	Department    string `json:"department"`     // вхождение в подразделение
	Status        string `json:"status"`         // точное значение статуса
	DateFrom      string `json:"date_from"`      // нижняя граница даты начала (2006-01-02)
	DateTo        string `json:"date_to"`        // верхняя граница даты окончания (2006-01-02)
	EmployeeID    string `json:"employee_id"`    // заявки конкретного сотрудника
	OnlyActivated bool   `json:"only_activated"` // только активированные заявки
}

type ReportFilter struct {
	ProjectNumber     string `json:"project_number"`      // вхождение в номер проекта
	Purpose           string `json:"purpose"`             // вхождение в цель
	StatusCancel      bool   `json:"status_cancel"`       // только отмененные
	StatusNotApproved bool   `json:"status_not_approved"` // только несогласованные
	StatusClosed      bool   `json:"status_closed"`       // только закрытые
	SortBy            string `json:"sort_by"`             // costs/overrun/created
}
