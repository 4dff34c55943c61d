package reporthandler

import (
	"bytes"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"business-trips-backend/db"
	employeestore "business-trips-backend/lib/employee/store"
	pdfexport "business-trips-backend/lib/export/pdf"
	xlsexport "business-trips-backend/lib/export/xls"
	tripaccess "business-trips-backend/lib/trip/access"
	tripstore "business-trips-backend/lib/trip/store"
	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/models"
	reportapimodels "business-trips-backend/models/api/report"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Summary(userID string, filter tripapimodels.ReportFilter) (view reportapimodels.SummaryView, err error)
	ExportXLS(userID string, filter tripapimodels.ReportFilter) (*bytes.Buffer, error)
	TripOrderPDF(userID, tripID string) (data []byte, name string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		tripStore:     tripstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		xls:           xlsexport.Instance,
	}
}

type impl struct {
	tripStore     tripstore.Provider
	employeeStore employeestore.Provider
	xls           xlsexport.Provider
}

// Summary строит сводку по активированным командировкам в пределах видимости
// пользователя.
func (i impl) Summary(userID string, filter tripapimodels.ReportFilter) (view reportapimodels.SummaryView, err error) {
	list, err := i.listVisible(userID, filter)
	if err != nil {
		return reportapimodels.SummaryView{}, err
	}

	view = reportapimodels.SummaryView{
		TotalTrips:      len(list),
		StatusCounts:    map[string]int{},
		MonthlyCosts:    map[string]decimal.Decimal{},
		MonthlyActual:   map[string]decimal.Decimal{},
		DepartmentCosts: map[string]decimal.Decimal{},
		Trips:           make([]tripapimodels.TripView, 0, len(list)),
	}
	for _, rec := range list {
		view.TotalCosts = view.TotalCosts.Add(rec.EstimatedCosts)
		view.TotalActualCosts = view.TotalActualCosts.Add(rec.ActualCosts)
		if rec.OverLimit {
			view.OverrunTrips++
			if overrun := rec.Overrun(); overrun.IsPositive() {
				view.OverrunAmount = view.OverrunAmount.Add(overrun)
			}
		}
		view.StatusCounts[string(rec.Status)]++
		month := rec.StartDate.Format("2006-01")
		view.MonthlyCosts[month] = view.MonthlyCosts[month].Add(rec.EstimatedCosts)
		view.MonthlyActual[month] = view.MonthlyActual[month].Add(rec.ActualCosts)
		if rec.Department != "" {
			view.DepartmentCosts[rec.Department] = view.DepartmentCosts[rec.Department].Add(rec.EstimatedCosts)
		}
		view.Trips = append(view.Trips, tripapimodels.TripConvert(rec))
	}
	return view, nil
}

func (i impl) ExportXLS(userID string, filter tripapimodels.ReportFilter) (*bytes.Buffer, error) {
	list, err := i.listVisible(userID, filter)
	if err != nil {
		return nil, err
	}
	return i.xls.ExportTripList(list)
}

func (i impl) TripOrderPDF(userID, tripID string) (data []byte, name string, err error) {
	user, err := i.getUser(userID)
	if err != nil {
		return nil, "", err
	}
	rec, err := i.tripStore.GetByID(tripID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", apperrors.New("заявка не найдена")
	}
	subordinateIDs, err := i.getSubordinateIDs(*user)
	if err != nil {
		return nil, "", err
	}
	if !tripaccess.CanView(*user, subordinateIDs, *rec) {
		return nil, "", apperrors.New("доступ запрещен")
	}
	data, err = pdfexport.GenerateTripOrder(*rec)
	if err != nil {
		log.WithField("rec_id", tripID).WithError(err).Error("ошибка формирования удостоверения")
		return nil, "", err
	}
	return data, rec.TripNumber + "_order.pdf", nil
}

func (i impl) listVisible(userID string, filter tripapimodels.ReportFilter) ([]dbmodels.BusinessTrip, error) {
	user, err := i.getUser(userID)
	if err != nil {
		return nil, err
	}
	subordinateIDs, err := i.getSubordinateIDs(*user)
	if err != nil {
		return nil, err
	}
	list, err := i.tripStore.ListForReport(*user, subordinateIDs, filter)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка получения данных для отчета")
		return nil, err
	}
	return list, nil
}

func (i impl) getSubordinateIDs(user dbmodels.User) ([]string, error) {
	if user.Role != models.RoleManager {
		return nil, nil
	}
	return i.employeeStore.GetSubordinateIDs(user.ID)
}

func (i impl) getUser(userID string) (*dbmodels.User, error) {
	user, err := i.employeeStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New("пользователь не найден")
	}
	return user, nil
}
