package tripapimodels

import (
	"time"

	"github.com/shopspring/decimal"

	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

type TripData struct {
	EmployeeID     string            `json:"employee_id"`     // сотрудник, для которого создается заявка (по умолчанию - автор)
	Department     string            `json:"department"`      // подразделение (по умолчанию - подразделение сотрудника)
	StartDate      string            `json:"start_date"`      // дата начала (2006-01-02)
	EndDate        string            `json:"end_date"`        // дата окончания (2006-01-02)
	Destination    string            `json:"destination"`     // место назначения
	Purpose        string            `json:"purpose"`         // цель командировки
	EstimatedCosts decimal.Decimal   `json:"estimated_costs"` // предполагаемые расходы
	CostDetails    string            `json:"cost_details"`    // детализация расходов
	TripFormat     models.TripFormat `json:"trip_format"`     // формат (Онлайн/Оффлайн)
	ProjectNumber  string            `json:"project_number"`  // номер проекта
	Regularity     string            `json:"regularity"`      // регулярность
	ReceivingParty string            `json:"receiving_party"` // принимающая сторона
	OverLimit      bool              `json:"over_limit"`      // заявленное превышение лимита
	MakeActive     bool              `json:"make_active"`     // сразу активировать заявку
}

const dateLayout = "2006-01-02"

func (r TripData) Validate() error {
	if r.Destination == "" {
		return apperrors.New("не указано место назначения")
	}
	if r.Purpose == "" {
		return apperrors.New("не указана цель командировки")
	}
	start, err := r.GetStartDate()
	if err != nil {
		return err
	}
	end, err := r.GetEndDate()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return apperrors.New("дата окончания раньше даты начала")
	}
	return nil
}

func (r TripData) GetStartDate() (time.Time, error) {
	t, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, apperrors.New("некорректная дата начала")
	}
	return t, nil
}

func (r TripData) GetEndDate() (time.Time, error) {
	t, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, apperrors.New("некорректная дата окончания")
	}
	return t, nil
}

// Данные бронирования для Travel-координатора.
type BookingData struct {
	TransportType          string     `json:"transport_type"`
	TransportTypeReturn    string     `json:"transport_type_return"`
	DepartureCity          string     `json:"departure_city"`
	ArrivalCity            string     `json:"arrival_city"`
	DepartureCityReturn    string     `json:"departure_city_return"`
	ArrivalCityReturn      string     `json:"arrival_city_return"`
	DepartureDateMin       *time.Time `json:"departure_date_min"`        // не раньше (туда)
	ArrivalDateMax         *time.Time `json:"arrival_date_max"`          // не позже (туда)
	DepartureDateMinReturn *time.Time `json:"departure_date_min_return"` // не раньше (обратно)
	ArrivalDateMaxReturn   *time.Time `json:"arrival_date_max_return"`   // не позже (обратно)
	TransferTo             string     `json:"transfer_to"`
	TransferFrom           string     `json:"transfer_from"`
	HotelName              string     `json:"hotel_name"`
	CheckIn                *time.Time `json:"check_in"`
	CheckOut               *time.Time `json:"check_out"`
	HotelRooms             int        `json:"hotel_rooms"`
	ContactPhone           string     `json:"contact_phone"`
	BookingNotes           string     `json:"booking_notes"`
}

type ReasonData struct {
	Reason string `json:"reason"` // причина отмены/несогласования
}

type FlagData struct {
	Value bool `json:"value"`
}

type ProcurementData struct {
	Needed  bool            `json:"needed"`
	Done    bool            `json:"done"`
	Costs   decimal.Decimal `json:"costs"`
	Details string          `json:"details"`
	Report  string          `json:"report"`
}

type GeoLocationData struct {
	Location  string   `json:"location"` // адрес/описание местоположения
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

func (r GeoLocationData) Validate() error {
	if r.Location == "" {
		return apperrors.New("не указано местоположение")
	}
	return nil
}

type TripView struct {
	ID                  string            `json:"id"`
	TripNumber          string            `json:"trip_number"`
	CreatedAt           time.Time         `json:"created_at"`
	Status              models.TripStatus `json:"status"`
	EmployeeID          string            `json:"employee_id"`
	EmployeeName        string            `json:"employee_name,omitempty"`
	ManagerID           string            `json:"manager_id,omitempty"`
	ManagerName         string            `json:"manager_name,omitempty"`
	Department          string            `json:"department,omitempty"`
	StartDate           time.Time         `json:"start_date"`
	EndDate             time.Time         `json:"end_date"`
	Duration            int               `json:"duration"`
	TripFormat          models.TripFormat `json:"trip_format,omitempty"`
	Destination         string            `json:"destination"`
	Purpose             string            `json:"purpose"`
	ProjectNumber       string            `json:"project_number,omitempty"`
	Regularity          string            `json:"regularity,omitempty"`
	ReceivingParty      string            `json:"receiving_party,omitempty"`
	CancellationReason  string            `json:"cancellation_reason,omitempty"`
	IsActivated         bool              `json:"is_activated"`
	ApprovalDate        *time.Time        `json:"approval_date,omitempty"`
	ApprovalRequestDate *time.Time        `json:"approval_request_date,omitempty"`

	EstimatedCosts  decimal.Decimal `json:"estimated_costs"`
	CostDetails     string          `json:"cost_details,omitempty"`
	OverLimit       bool            `json:"over_limit"`
	OverrunApproved bool            `json:"overrun_approved"`
	ActualCosts     decimal.Decimal `json:"actual_costs"`

	Booking                BookingData `json:"booking"`
	BookingCompleted       bool        `json:"booking_completed"`
	BookingOverrunApproved bool        `json:"booking_overrun_approved"`

	GeoLocation           string     `json:"geo_location,omitempty"`
	GeoLocationDate       *time.Time `json:"geo_location_date,omitempty"`
	GeoLocationVerified   bool       `json:"geo_location_verified"`
	ReportPrepared        bool       `json:"report_prepared"`
	ReportReviewed        bool       `json:"report_reviewed"`
	TripClosed            bool       `json:"trip_closed"`
	ReportOverrunApproved bool       `json:"report_overrun_approved"`

	ProcurementNeeded  bool            `json:"procurement_needed"`
	ProcurementDone    bool            `json:"procurement_done"`
	ProcurementCosts   decimal.Decimal `json:"procurement_costs"`
	ProcurementDetails string          `json:"procurement_details,omitempty"`
	ProcurementReport  string          `json:"procurement_report,omitempty"`
}

func TripConvert(rec dbmodels.BusinessTrip) TripView {
	view := TripView{
		ID:                  rec.ID,
		TripNumber:          rec.TripNumber,
		CreatedAt:           rec.CreatedAt,
		Status:              rec.Status,
		EmployeeID:          rec.EmployeeID,
		ManagerID:           rec.GetManagerID(),
		Department:          rec.Department,
		StartDate:           rec.StartDate,
		EndDate:             rec.EndDate,
		Duration:            rec.Duration,
		TripFormat:          rec.TripFormat,
		Destination:         rec.Destination,
		Purpose:             rec.Purpose,
		ProjectNumber:       rec.ProjectNumber,
		Regularity:          rec.Regularity,
		ReceivingParty:      rec.ReceivingParty,
		CancellationReason:  rec.CancellationReason,
		IsActivated:         rec.IsActivated,
		ApprovalDate:        rec.ApprovalDate,
		ApprovalRequestDate: rec.ApprovalRequestDate,
		EstimatedCosts:      rec.EstimatedCosts,
		CostDetails:         rec.CostDetails,
		OverLimit:           rec.OverLimit,
		OverrunApproved:     rec.OverrunApproved,
		ActualCosts:         rec.ActualCosts,
		Booking: BookingData{
			TransportType:          rec.TransportType,
			TransportTypeReturn:    rec.TransportTypeReturn,
			DepartureCity:          rec.DepartureCity,
			ArrivalCity:            rec.ArrivalCity,
			DepartureCityReturn:    rec.DepartureCityReturn,
			ArrivalCityReturn:      rec.ArrivalCityReturn,
			DepartureDateMin:       rec.DepartureDateMin,
			ArrivalDateMax:         rec.ArrivalDateMax,
			DepartureDateMinReturn: rec.DepartureDateMinReturn,
			ArrivalDateMaxReturn:   rec.ArrivalDateMaxReturn,
			TransferTo:             rec.TransferTo,
			TransferFrom:           rec.TransferFrom,
			HotelName:              rec.HotelName,
			CheckIn:                rec.CheckIn,
			CheckOut:               rec.CheckOut,
			HotelRooms:             rec.HotelRooms,
			ContactPhone:           rec.ContactPhone,
			BookingNotes:           rec.BookingNotes,
		},
		BookingCompleted:       rec.BookingCompleted,
		BookingOverrunApproved: rec.BookingOverrunApproved,
		GeoLocation:            rec.GeoLocation,
		GeoLocationDate:        rec.GeoLocationDate,
		GeoLocationVerified:    rec.GeoLocationVerified,
		ReportPrepared:         rec.ReportPrepared,
		ReportReviewed:         rec.ReportReviewed,
		TripClosed:             rec.TripClosed,
		ReportOverrunApproved:  rec.ReportOverrunApproved,
		ProcurementNeeded:      rec.ProcurementNeeded,
		ProcurementDone:        rec.ProcurementDone,
		ProcurementCosts:       rec.ProcurementCosts,
		ProcurementDetails:     rec.ProcurementDetails,
		ProcurementReport:      rec.ProcurementReport,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.FullName
	}
	if rec.Manager != nil {
		view.ManagerName = rec.Manager.FullName
	}
	return view
}
