package dbmodels

import "github.com/shopspring/decimal"

type TripCost struct {
	BaseModel
	TripID   string          `gorm:"type:varchar(36);index"`
	Category string          `gorm:"type:varchar(100)"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Comment  string          `gorm:"type:text"`
}
