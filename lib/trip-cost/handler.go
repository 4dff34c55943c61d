package tripcosthandler

import (
	log "github.com/sirupsen/logrus"

	"business-trips-backend/db"
	employeestore "business-trips-backend/lib/employee/store"
	tripcoststore "business-trips-backend/lib/trip-cost/store"
	tripaccess "business-trips-backend/lib/trip/access"
	tripstore "business-trips-backend/lib/trip/store"
	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/models"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Add(userID, tripID string, data tripapimodels.CostData) (id string, err error)
	Update(userID, tripID, id string, data tripapimodels.CostData) error
	Delete(userID, tripID, id string) error
	List(userID, tripID string) (view tripapimodels.CostListView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         tripcoststore.NewInstance(db.DB),
		tripStore:     tripstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store         tripcoststore.Provider
	tripStore     tripstore.Provider
	employeeStore employeestore.Provider
}

// getTrip возвращает заявку с проверкой видимости для пользователя.
func (i impl) getTrip(userID, tripID string) (*dbmodels.User, *dbmodels.BusinessTrip, error) {
	user, err := i.employeeStore.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperrors.New("пользователь не найден")
	}
	trip, err := i.tripStore.GetByID(tripID)
	if err != nil {
		return nil, nil, err
	}
	if trip == nil {
		return nil, nil, apperrors.New("заявка не найдена")
	}
	var subordinateIDs []string
	if user.Role == models.RoleManager {
		subordinateIDs, err = i.employeeStore.GetSubordinateIDs(user.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	if !tripaccess.CanView(*user, subordinateIDs, *trip) {
		return nil, nil, apperrors.New("доступ запрещен")
	}
	return user, trip, nil
}

// Изменять расходы могут владелец заявки, руководители и администратор.
func canEditCosts(user dbmodels.User, trip dbmodels.BusinessTrip) bool {
	switch user.Role {
	case models.RoleAdmin, models.RoleTopManager, models.RoleManager:
		return true
	}
	return trip.EmployeeID == user.ID
}

func (i impl) Add(userID, tripID string, data tripapimodels.CostData) (id string, err error) {
	logger := log.WithField("trip_id", tripID)
	user, trip, err := i.getTrip(userID, tripID)
	if err != nil {
		return "", err
	}
	if !canEditCosts(*user, *trip) {
		return "", apperrors.New("недостаточно прав")
	}
	id, err = i.store.Create(dbmodels.TripCost{
		TripID:   tripID,
		Category: data.Category,
		Amount:   data.Amount,
		Comment:  data.Comment,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка добавления расхода")
		return "", err
	}
	if err = i.recalcActualCosts(tripID); err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("добавлен расход по командировке")
	return id, nil
}

func (i impl) Update(userID, tripID, id string, data tripapimodels.CostData) error {
	logger := log.
		WithField("trip_id", tripID).
		WithField("rec_id", id)
	user, trip, err := i.getTrip(userID, tripID)
	if err != nil {
		return err
	}
	if !canEditCosts(*user, *trip) {
		return apperrors.New("недостаточно прав")
	}
	err = i.store.Update(tripID, id, map[string]interface{}{
		"category": data.Category,
		"amount":   data.Amount,
		"comment":  data.Comment,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления расхода")
		return err
	}
	return i.recalcActualCosts(tripID)
}

func (i impl) Delete(userID, tripID, id string) error {
	logger := log.
		WithField("trip_id", tripID).
		WithField("rec_id", id)
	user, trip, err := i.getTrip(userID, tripID)
	if err != nil {
		return err
	}
	if !canEditCosts(*user, *trip) {
		return apperrors.New("недостаточно прав")
	}
	err = i.store.Delete(tripID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления расхода")
		return err
	}
	return i.recalcActualCosts(tripID)
}

func (i impl) List(userID, tripID string) (view tripapimodels.CostListView, err error) {
	if _, _, err = i.getTrip(userID, tripID); err != nil {
		return tripapimodels.CostListView{}, err
	}
	list, err := i.store.ListByTrip(tripID)
	if err != nil {
		log.WithField("trip_id", tripID).WithError(err).Error("ошибка получения расходов")
		return tripapimodels.CostListView{}, err
	}
	items := make([]tripapimodels.CostView, 0, len(list))
	for _, rec := range list {
		items = append(items, tripapimodels.CostConvert(rec))
	}
	sum, err := i.store.SumByTrip(tripID)
	if err != nil {
		return tripapimodels.CostListView{}, err
	}
	return tripapimodels.CostListView{
		Items:       items,
		ActualCosts: sum,
	}, nil
}

// recalcActualCosts пересчитывает фактические расходы заявки после каждого
// изменения списка расходов.
func (i impl) recalcActualCosts(tripID string) error {
	sum, err := i.store.SumByTrip(tripID)
	if err != nil {
		log.WithField("trip_id", tripID).WithError(err).Error("ошибка суммирования расходов")
		return err
	}
	return i.tripStore.Update(tripID, map[string]interface{}{
		"actual_costs": sum,
	})
}
