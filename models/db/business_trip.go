package dbmodels

import (
	"time"

	"github.com/shopspring/decimal"

	"business-trips-backend/models"
)

type BusinessTrip struct {
	BaseModel
	TripNumber string            `gorm:"type:varchar(30);uniqueIndex"`
	Status     models.TripStatus `gorm:"type:varchar(50);index"`

	// Основная информация
	EmployeeID string  `gorm:"type:varchar(36);index"`
	Employee   *User   `gorm:"foreignKey:EmployeeID"`
	ManagerID  *string `gorm:"type:varchar(36);index"`
	Manager    *User   `gorm:"foreignKey:ManagerID"`
	Department string  `gorm:"type:varchar(100)"`

	// Детали поездки
	StartDate           time.Time
	EndDate             time.Time
	Duration            int
	TripFormat          models.TripFormat `gorm:"type:varchar(20)"`
	Destination         string            `gorm:"type:varchar(200)"`
	Purpose             string            `gorm:"type:varchar(200)"`
	ProjectNumber       string            `gorm:"type:varchar(50)"`
	Regularity          string            `gorm:"type:varchar(50)"`
	ReceivingParty      string            `gorm:"type:varchar(200)"`
	CancellationReason  string            `gorm:"type:varchar(200)"`
	IsActivated         bool
	ApprovalDate        *time.Time
	ApprovalRequestDate *time.Time `gorm:"index"`

	// Расходы
	EstimatedCosts  decimal.Decimal `gorm:"type:numeric(14,2)"`
	CostDetails     string          `gorm:"type:text"`
	OverLimit       bool
	OverrunApproved bool
	ActualCosts     decimal.Decimal `gorm:"type:numeric(14,2)"`

	// Бронирование
	TransportType          string `gorm:"type:varchar(50)"`
	TransportTypeReturn    string `gorm:"type:varchar(50)"`
	DepartureCity          string `gorm:"type:varchar(100)"`
	ArrivalCity            string `gorm:"type:varchar(100)"`
	DepartureCityReturn    string `gorm:"type:varchar(100)"`
	ArrivalCityReturn      string `gorm:"type:varchar(100)"`
	DepartureDateMin       *time.Time
	ArrivalDateMax         *time.Time
	DepartureDateMinReturn *time.Time
	ArrivalDateMaxReturn   *time.Time
	TransferTo             string `gorm:"type:varchar(200)"`
	TransferFrom           string `gorm:"type:varchar(200)"`
	HotelName              string `gorm:"type:varchar(200)"`
	CheckIn                *time.Time
	CheckOut               *time.Time
	HotelRooms             int
	ContactPhone           string `gorm:"type:varchar(50)"`
	BookingNotes           string `gorm:"type:text"`
	BookingCompleted       bool
	BookingOverrunApproved bool

	// Отчет
	GeoLocation           string `gorm:"type:varchar(200)"`
	GeoLocationDate       *time.Time
	GeoLocationVerified   bool
	ReportPrepared        bool
	ReportReviewed        bool
	TripClosed            bool
	ReportOverrunApproved bool

	// Закупки
	ProcurementNeeded  bool `gorm:"index"`
	ProcurementDone    bool
	ProcurementCosts   decimal.Decimal `gorm:"type:numeric(14,2)"`
	ProcurementDetails string          `gorm:"type:text"`
	ProcurementReport  string          `gorm:"type:text"`
}

func (t BusinessTrip) GetManagerID() string {
	if t.ManagerID == nil {
		return ""
	}
	return *t.ManagerID
}

// Overrun возвращает превышение фактических расходов над запланированными.
func (t BusinessTrip) Overrun() decimal.Decimal {
	actual := t.ActualCosts
	if actual.IsZero() {
		actual = t.EstimatedCosts
	}
	return actual.Sub(t.EstimatedCosts)
}
