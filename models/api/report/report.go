package reportapimodels

import (
	"github.com/shopspring/decimal"

	tripapimodels "business-trips-backend/models/api/trip"
)

type SummaryView struct {
	TotalTrips       int                        `json:"total_trips"`
	TotalCosts       decimal.Decimal            `json:"total_costs"`        // сумма запланированных расходов
	TotalActualCosts decimal.Decimal            `json:"total_actual_costs"` // сумма фактических расходов
	OverrunTrips     int                        `json:"overrun_trips"`      // заявки с заявленным превышением лимита
	OverrunAmount    decimal.Decimal            `json:"overrun_amount"`     // суммарное превышение
	StatusCounts     map[string]int             `json:"status_counts"`
	MonthlyCosts     map[string]decimal.Decimal `json:"monthly_costs"`  // ключ YYYY-MM
	MonthlyActual    map[string]decimal.Decimal `json:"monthly_actual"` // ключ YYYY-MM
	DepartmentCosts  map[string]decimal.Decimal `json:"department_costs"`
	Trips            []tripapimodels.TripView   `json:"trips"`
}
