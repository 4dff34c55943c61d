package triphandler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"business-trips-backend/db"
	documentstore "business-trips-backend/lib/document/store"
	employeestore "business-trips-backend/lib/employee/store"
	geohistorystore "business-trips-backend/lib/geo-history/store"
	notifyhandler "business-trips-backend/lib/notify"
	tripaccess "business-trips-backend/lib/trip/access"
	tripstore "business-trips-backend/lib/trip/store"
	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/models"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Create(userID string, data tripapimodels.TripData) (id string, err error)
	GetByID(userID, id string) (view tripapimodels.TripView, err error)
	UpdateDetails(userID, id string, data tripapimodels.TripData) error
	List(userID string, filter tripapimodels.TripFilter) (list []tripapimodels.TripView, rowCount int64, err error)
	Dashboard(userID string) (list []tripapimodels.TripView, err error)
	Planning(userID string) (list []tripapimodels.TripView, err error)

	Activate(userID, id string) error
	Deactivate(userID, id string) error
	SendForApproval(userID, id string) error
	Approve(userID, id string) error
	Reject(userID, id string, data tripapimodels.ReasonData) error
	Cancel(userID, id string, data tripapimodels.ReasonData) error

	ApproveOverrun(userID, id string) error
	ApproveBookingOverrun(userID, id string) error
	UpdateBooking(userID, id string, data tripapimodels.BookingData) error
	CompleteBooking(userID, id string) error
	SetProcurement(userID, id string, data tripapimodels.ProcurementData) error
	SetProcurementDone(userID, id string, data tripapimodels.ProcurementData) error
	SetGeoLocation(userID, id string, data tripapimodels.GeoLocationData, ip, userAgent string) error
	VerifyGeoLocation(userID, id string, verified bool) error
	ApproveReportOverrun(userID, id string) error
	SetReportPrepared(userID, id string, prepared bool) error
	SetReportReviewed(userID, id string, reviewed bool) error
	Close(userID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         tripstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		documentStore: documentstore.NewInstance(db.DB),
		geoStore:      geohistorystore.NewInstance(db.DB),
		notify:        notifyhandler.Instance,
	}
}

type impl struct {
	store         tripstore.Provider
	employeeStore employeestore.Provider
	documentStore documentstore.Provider
	geoStore      geohistorystore.Provider
	notify        notifyhandler.Provider
}

func (i impl) Create(userID string, data tripapimodels.TripData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	user, err := i.getUser(userID)
	if err != nil {
		return "", err
	}
	switch user.Role {
	case models.RoleAdmin, models.RoleTopManager, models.RoleManager, models.RoleEmployee:
	default:
		return "", apperrors.New("недостаточно прав для создания заявки")
	}

	employeeID := data.EmployeeID
	if employeeID == "" {
		employeeID = userID
	}
	if user.Role == models.RoleEmployee && employeeID != userID {
		return "", apperrors.New("сотрудник может создавать заявки только для себя")
	}
	if user.Role == models.RoleManager && employeeID != userID {
		subordinateIDs, err := i.employeeStore.GetSubordinateIDs(userID)
		if err != nil {
			return "", err
		}
		isSubordinate := false
		for _, subID := range subordinateIDs {
			if subID == employeeID {
				isSubordinate = true
				break
			}
		}
		if !isSubordinate {
			return "", apperrors.New("вы можете создавать заявки только для своих подчиненных")
		}
	}
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "", apperrors.New("сотрудник не найден")
	}

	startDate, err := data.GetStartDate()
	if err != nil {
		return "", err
	}
	endDate, err := data.GetEndDate()
	if err != nil {
		return "", err
	}
	// продолжительность в днях, включая день начала и день окончания
	duration := int(endDate.Sub(startDate).Hours()/24) + 1

	status := models.TripStatusPlanned
	if data.MakeActive {
		status = models.TripStatusActivated
	}
	department := data.Department
	if department == "" {
		department = employee.Department
	}

	rec := dbmodels.BusinessTrip{
		TripNumber:     newTripNumber(),
		Status:         status,
		EmployeeID:     employeeID,
		ManagerID:      employee.ManagerID,
		Department:     department,
		StartDate:      startDate,
		EndDate:        endDate,
		Duration:       duration,
		TripFormat:     data.TripFormat,
		Destination:    data.Destination,
		Purpose:        data.Purpose,
		ProjectNumber:  data.ProjectNumber,
		Regularity:     data.Regularity,
		ReceivingParty: data.ReceivingParty,
		EstimatedCosts: data.EstimatedCosts,
		CostDetails:    data.CostDetails,
		OverLimit:      data.OverLimit,
		IsActivated:    data.MakeActive,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.
			WithField("request", fmt.Sprintf("%+v", data)).
			WithError(err).
			Error("Ошибка создания заявки")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("Создана заявка на командировку")
	return id, nil
}

func newTripNumber() string {
	return fmt.Sprintf("BT-%s-%s", time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:4])
}

func (i impl) GetByID(userID, id string) (tripapimodels.TripView, error) {
	user, err := i.getUser(userID)
	if err != nil {
		return tripapimodels.TripView{}, err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return tripapimodels.TripView{}, err
	}
	subordinateIDs, err := i.getSubordinateIDs(*user)
	if err != nil {
		return tripapimodels.TripView{}, err
	}
	if !tripaccess.CanView(*user, subordinateIDs, *rec) {
		return tripapimodels.TripView{}, apperrors.New("доступ запрещен")
	}
	return tripapimodels.TripConvert(*rec), nil
}

func (i impl) UpdateDetails(userID, id string, data tripapimodels.TripData) error {
	logger := log.WithField("rec_id", id)
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !i.canManage(*user, *rec) {
		return apperrors.New("недостаточно прав")
	}
	if rec.Status.IsTerminal() {
		return apperrors.Errorf("заявка в статусе %v недоступна для изменения", rec.Status)
	}
	startDate, err := data.GetStartDate()
	if err != nil {
		return err
	}
	endDate, err := data.GetEndDate()
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"start_date":      startDate,
		"end_date":        endDate,
		"trip_format":     data.TripFormat,
		"destination":     data.Destination,
		"purpose":         data.Purpose,
		"project_number":  data.ProjectNumber,
		"regularity":      data.Regularity,
		"receiving_party": data.ReceivingParty,
		"estimated_costs": data.EstimatedCosts,
		"cost_details":    data.CostDetails,
		"over_limit":      data.OverLimit,
	}
	if data.Department != "" {
		updMap["department"] = data.Department
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления заявки")
		return err
	}
	logger.Info("обновлена заявка")
	return nil
}

func (i impl) List(userID string, filter tripapimodels.TripFilter) (list []tripapimodels.TripView, rowCount int64, err error) {
	user, err := i.getUser(userID)
	if err != nil {
		return nil, 0, err
	}
	subordinateIDs, err := i.getSubordinateIDs(*user)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(*user, subordinateIDs, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []tripapimodels.TripView{}, rowCount, nil
	}
	recList, err := i.store.List(*user, subordinateIDs, filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка заявок")
		return nil, 0, err
	}
	result := make([]tripapimodels.TripView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, tripapimodels.TripConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Dashboard(userID string) (list []tripapimodels.TripView, err error) {
	user, err := i.getUser(userID)
	if err != nil {
		return nil, err
	}
	subordinateIDs, err := i.getSubordinateIDs(*user)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.ListVisible(*user, subordinateIDs)
	if err != nil {
		log.WithError(err).Error("ошибка получения заявок для дашборда")
		return nil, err
	}
	result := make([]tripapimodels.TripView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, tripapimodels.TripConvert(rec))
	}
	return result, nil
}

func (i impl) Planning(userID string) (list []tripapimodels.TripView, err error) {
	user, err := i.getUser(userID)
	if err != nil {
		return nil, err
	}
	subordinateIDs, err := i.getSubordinateIDs(*user)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.ListPlanned(*user, subordinateIDs)
	if err != nil {
		log.WithError(err).Error("ошибка получения планируемых заявок")
		return nil, err
	}
	result := make([]tripapimodels.TripView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, tripapimodels.TripConvert(rec))
	}
	return result, nil
}

func (i impl) Activate(userID, id string) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !i.canManage(*user, *rec) {
		return apperrors.New("недостаточно прав")
	}
	return i.changeStatus(*rec, models.TripStatusActivated, map[string]interface{}{
		"is_activated": true,
	})
}

func (i impl) Deactivate(userID, id string) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !i.canManage(*user, *rec) {
		return apperrors.New("недостаточно прав")
	}
	return i.changeStatus(*rec, models.TripStatusPlanned, map[string]interface{}{
		"is_activated": false,
	})
}

func (i impl) SendForApproval(userID, id string) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !i.canManage(*user, *rec) {
		return apperrors.New("недостаточно прав")
	}
	err = i.changeStatus(*rec, models.TripStatusPendingApproval, map[string]interface{}{
		"approval_request_date": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if rec.ManagerID != nil {
		manager, err := i.employeeStore.GetByID(*rec.ManagerID)
		if err == nil {
			i.notify.TripSentForApproval(*rec, manager)
		}
	}
	return nil
}

func (i impl) Approve(userID, id string) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !user.Role.IsManagement() {
		return apperrors.New("недостаточно прав")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	err = i.changeStatus(*rec, models.TripStatusApproved, map[string]interface{}{
		"approval_date": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	employee, err := i.employeeStore.GetByID(rec.EmployeeID)
	if err == nil {
		i.notify.TripApproved(*rec, employee)
	}
	return nil
}

func (i impl) Reject(userID, id string, data tripapimodels.ReasonData) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !user.Role.IsManagement() {
		return apperrors.New("недостаточно прав")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	err = i.changeStatus(*rec, models.TripStatusRejected, map[string]interface{}{
		"cancellation_reason": data.Reason,
	})
	if err != nil {
		return err
	}
	employee, err := i.employeeStore.GetByID(rec.EmployeeID)
	if err == nil {
		i.notify.TripRejected(*rec, employee, data.Reason)
	}
	return nil
}

func (i impl) Cancel(userID, id string, data tripapimodels.ReasonData) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !i.canManage(*user, *rec) {
		return apperrors.New("недостаточно прав")
	}
	return i.changeStatus(*rec, models.TripStatusCancelled, map[string]interface{}{
		"cancellation_reason": data.Reason,
	})
}

func (i impl) ApproveOverrun(userID, id string) error {
	return i.setFlagByRoles(userID, id, "overrun_approved",
		models.RoleManager, models.RoleTopManager)
}

func (i impl) ApproveBookingOverrun(userID, id string) error {
	return i.setFlagByRoles(userID, id, "booking_overrun_approved",
		models.RoleAdmin, models.RoleTravelCoordinator)
}

func (i impl) UpdateBooking(userID, id string, data tripapimodels.BookingData) error {
	logger := log.WithField("rec_id", id)
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleTravelCoordinator {
		return apperrors.New("недостаточно прав")
	}
	if _, err = i.getRec(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"transport_type":            data.TransportType,
		"transport_type_return":     data.TransportTypeReturn,
		"departure_city":            data.DepartureCity,
		"arrival_city":              data.ArrivalCity,
		"departure_city_return":     data.DepartureCityReturn,
		"arrival_city_return":       data.ArrivalCityReturn,
		"departure_date_min":        data.DepartureDateMin,
		"arrival_date_max":          data.ArrivalDateMax,
		"departure_date_min_return": data.DepartureDateMinReturn,
		"arrival_date_max_return":   data.ArrivalDateMaxReturn,
		"transfer_to":               data.TransferTo,
		"transfer_from":             data.TransferFrom,
		"hotel_name":                data.HotelName,
		"check_in":                  data.CheckIn,
		"check_out":                 data.CheckOut,
		"hotel_rooms":               data.HotelRooms,
		"contact_phone":             data.ContactPhone,
		"booking_notes":             data.BookingNotes,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления данных бронирования")
		return err
	}
	logger.Info("обновлены данные бронирования")
	return nil
}

func (i impl) CompleteBooking(userID, id string) error {
	return i.setFlagByRoles(userID, id, "booking_completed",
		models.RoleAdmin, models.RoleTravelCoordinator)
}

func (i impl) SetProcurement(userID, id string, data tripapimodels.ProcurementData) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleProcurement {
		return apperrors.New("недостаточно прав")
	}
	if _, err = i.getRec(id); err != nil {
		return err
	}
	return i.store.Update(id, map[string]interface{}{
		"procurement_needed":  data.Needed,
		"procurement_costs":   data.Costs,
		"procurement_details": data.Details,
	})
}

func (i impl) SetProcurementDone(userID, id string, data tripapimodels.ProcurementData) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleProcurement {
		return apperrors.New("недостаточно прав")
	}
	if _, err = i.getRec(id); err != nil {
		return err
	}
	return i.store.Update(id, map[string]interface{}{
		"procurement_done":   data.Done,
		"procurement_report": data.Report,
	})
}

func (i impl) SetGeoLocation(userID, id string, data tripapimodels.GeoLocationData, ip, userAgent string) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.EmployeeID != userID {
		return apperrors.New("только сотрудник может установить геолокацию")
	}
	now := time.Now().UTC()
	_, err = i.geoStore.Create(dbmodels.GeoLocationHistory{
		TripID:    id,
		Location:  data.Location,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		Accuracy:  data.Accuracy,
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedBy: userID,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка записи истории геолокации")
		return err
	}
	// на заявке хранится денормализованная копия последней отметки,
	// новая отметка сбрасывает подтверждение
	err = i.store.Update(id, map[string]interface{}{
		"geo_location":          data.Location,
		"geo_location_date":     now,
		"geo_location_verified": false,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления геолокации")
		return err
	}
	logger.Info("установлена геолокация")
	return nil
}

func (i impl) VerifyGeoLocation(userID, id string, verified bool) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !user.Role.IsManagement() {
		return apperrors.New("недостаточно прав")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if verified && rec.GeoLocation == "" {
		return apperrors.New("геолокация еще не установлена")
	}
	return i.store.Update(id, map[string]interface{}{
		"geo_location_verified": verified,
	})
}

func (i impl) ApproveReportOverrun(userID, id string) error {
	return i.setFlagByRoles(userID, id, "report_overrun_approved",
		models.RoleManager, models.RoleTopManager)
}

func (i impl) SetReportPrepared(userID, id string, prepared bool) error {
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.EmployeeID != userID {
		return apperrors.New("только сотрудник может отметить отчет как подготовленный")
	}
	if prepared {
		if !rec.ActualCosts.IsPositive() {
			return apperrors.New("отчет нельзя подготовить без фактических расходов")
		}
		docCount, err := i.documentStore.CountByTrip(id)
		if err != nil {
			return err
		}
		if docCount == 0 {
			return apperrors.New("отчет нельзя подготовить без приложенных документов")
		}
	}
	return i.store.Update(id, map[string]interface{}{
		"report_prepared": prepared,
	})
}

func (i impl) SetReportReviewed(userID, id string, reviewed bool) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !user.Role.IsManagement() {
		return apperrors.New("недостаточно прав")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if reviewed {
		if rec.GeoLocation == "" {
			return apperrors.New("отчет нельзя проверить без отметки геолокации")
		}
		if !rec.ReportPrepared {
			return apperrors.New("отчет нельзя проверить, пока он не подготовлен")
		}
		docCount, err := i.documentStore.CountByTrip(id)
		if err != nil {
			return err
		}
		if docCount == 0 {
			return apperrors.New("отчет нельзя проверить без приложенных документов")
		}
	}
	return i.store.Update(id, map[string]interface{}{
		"report_reviewed": reviewed,
	})
}

func (i impl) Close(userID, id string) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleAccounting {
		return apperrors.New("недостаточно прав")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if !rec.ReportReviewed {
		return apperrors.New("заявку нельзя закрыть без проверенного отчета")
	}
	return i.changeStatus(*rec, models.TripStatusClosed, map[string]interface{}{
		"trip_closed": true,
	})
}

// changeStatus применяет переход по таблице допустимых переходов,
// добавляя сопутствующие изменения из extra.
func (i impl) changeStatus(rec dbmodels.BusinessTrip, to models.TripStatus, extra map[string]interface{}) error {
	logger := log.
		WithField("rec_id", rec.ID).
		WithField("new_status", to)
	if !rec.Status.IsAllowChange(to) {
		return apperrors.Errorf("переход из статуса %v в %v недопустим", rec.Status, to)
	}
	updMap := map[string]interface{}{
		"status": to,
	}
	for k, v := range extra {
		updMap[k] = v
	}
	err := i.store.Update(rec.ID, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления статуса")
		return err
	}
	logger.Info("статус заявки обновлен")
	return nil
}

func (i impl) setFlagByRoles(userID, id, column string, roles ...models.UserRole) error {
	user, err := i.getUser(userID)
	if err != nil {
		return err
	}
	allowed := false
	for _, role := range roles {
		if user.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.New("недостаточно прав")
	}
	if _, err = i.getRec(id); err != nil {
		return err
	}
	return i.store.Update(id, map[string]interface{}{
		column: true,
	})
}

// Заявкой распоряжается ее владелец, руководители или администратор.
func (i impl) canManage(user dbmodels.User, rec dbmodels.BusinessTrip) bool {
	switch user.Role {
	case models.RoleAdmin, models.RoleTopManager, models.RoleManager:
		return true
	}
	return rec.EmployeeID == user.ID
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
		log.WithField("user_id", userID).WithError(err).Error("ошибка получения пользователя")
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New("пользователь не найден")
	}
	return user, nil
}

func (i impl) getRec(id string) (*dbmodels.BusinessTrip, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("ошибка получения заявки")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.New("заявка не найдена")
	}
	return rec, nil
}
