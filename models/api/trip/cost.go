package tripapimodels

import (
	"time"

	"github.com/shopspring/decimal"

	"business-trips-backend/lib/utils/apperrors"
	dbmodels "business-trips-backend/models/db"
)

type CostData struct {
	Category string          `json:"category"` // статья расхода
	Amount   decimal.Decimal `json:"amount"`   // сумма
	Comment  string          `json:"comment"`  // комментарий
}

func (r CostData) Validate() error {
	if r.Category == "" {
		return apperrors.New("не указана статья расхода")
	}
	if r.Amount.IsNegative() {
		return apperrors.New("сумма расхода не может быть отрицательной")
	}
	return nil
}

type CostView struct {
	ID        string          `json:"id"`
	TripID    string          `json:"trip_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func CostConvert(rec dbmodels.TripCost) CostView {
	return CostView{
		ID:        rec.ID,
		TripID:    rec.TripID,
		Category:  rec.Category,
		Amount:    rec.Amount,
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
	}
}

type CostListView struct {
	Items       []CostView      `json:"items"`
	ActualCosts decimal.Decimal `json:"actual_costs"` // кэшированная сумма по заявке
}
