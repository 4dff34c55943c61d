package tripstore

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tripaccess "business-trips-backend/lib/trip/access"
	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/models"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.BusinessTrip) (id string, err error)
	GetByID(id string) (rec *dbmodels.BusinessTrip, err error)
	Update(id string, updMap map[string]interface{}) error
	ListCount(user dbmodels.User, subordinateIDs []string, filter tripapimodels.TripFilter) (count int64, err error)
	List(user dbmodels.User, subordinateIDs []string, filter tripapimodels.TripFilter) (list []dbmodels.BusinessTrip, err error)
	ListVisible(user dbmodels.User, subordinateIDs []string) (list []dbmodels.BusinessTrip, err error)
	ListPlanned(user dbmodels.User, subordinateIDs []string) (list []dbmodels.BusinessTrip, err error)
	ListForReport(user dbmodels.User, subordinateIDs []string, filter tripapimodels.ReportFilter) (list []dbmodels.BusinessTrip, err error)
	ListOverdueApprovals(before time.Time) (list []dbmodels.BusinessTrip, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.BusinessTrip) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.BusinessTrip, error) {
	rec := dbmodels.BusinessTrip{}
	err := i.db.
		Model(&dbmodels.BusinessTrip{}).
		Where("id = ?", id).
		Preload("Employee").
		Preload("Manager").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.BusinessTrip{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.New("запись не найдена")
	}
	return nil
}

func (i impl) ListCount(user dbmodels.User, subordinateIDs []string, filter tripapimodels.TripFilter) (count int64, err error) {
	var rowCount int64
	tx := tripaccess.Scope(i.db.Model(&dbmodels.BusinessTrip{}), user, subordinateIDs)
	tx = i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества заявок")
		return 0, errors.New("ошибка получения общего количества заявок")
	}
	return rowCount, nil
}

func (i impl) List(user dbmodels.User, subordinateIDs []string, filter tripapimodels.TripFilter) (list []dbmodels.BusinessTrip, err error) {
	list = []dbmodels.BusinessTrip{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx := tripaccess.Scope(i.db.Model(&dbmodels.BusinessTrip{}), user, subordinateIDs)
	tx = i.addFilter(tx, filter)
	err = tx.
		Preload("Employee").
		Preload("Manager").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListVisible(user dbmodels.User, subordinateIDs []string) (list []dbmodels.BusinessTrip, err error) {
	list = []dbmodels.BusinessTrip{}
	err = tripaccess.Scope(i.db.Model(&dbmodels.BusinessTrip{}), user, subordinateIDs).
		Preload("Employee").
		Preload("Manager").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListPlanned(user dbmodels.User, subordinateIDs []string) (list []dbmodels.BusinessTrip, err error) {
	list = []dbmodels.BusinessTrip{}
	err = tripaccess.Scope(i.db.Model(&dbmodels.BusinessTrip{}), user, subordinateIDs).
		Where("status = ?", models.TripStatusPlanned).
		Preload("Employee").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForReport(user dbmodels.User, subordinateIDs []string, filter tripapimodels.ReportFilter) (list []dbmodels.BusinessTrip, err error) {
	list = []dbmodels.BusinessTrip{}
	tx := tripaccess.Scope(i.db.Model(&dbmodels.BusinessTrip{}), user, subordinateIDs).
		Where("is_activated = ?", true)
	if filter.ProjectNumber != "" {
		tx = tx.Where("project_number like ?", "%"+filter.ProjectNumber+"%")
	}
	if filter.Purpose != "" {
		tx = tx.Where("purpose like ?", "%"+filter.Purpose+"%")
	}
	if filter.StatusCancel {
		tx = tx.Where("status = ?", models.TripStatusCancelled)
	}
	if filter.StatusNotApproved {
		tx = tx.Where("status = ?", models.TripStatusRejected)
	}
	if filter.StatusClosed {
		tx = tx.Where("trip_closed = ?", true)
	}
	switch filter.SortBy {
	case "costs":
		tx = tx.Order("estimated_costs desc")
	case "overrun":
		tx = tx.Order("(coalesce(nullif(actual_costs, 0), estimated_costs) - estimated_costs) desc")
	default:
		tx = tx.Order("created_at desc")
	}
	err = tx.
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListOverdueApprovals(before time.Time) (list []dbmodels.BusinessTrip, err error) {
	list = []dbmodels.BusinessTrip{}
	err = i.db.
		Model(&dbmodels.BusinessTrip{}).
		Where("status = ?", models.TripStatusPendingApproval).
		Where("approval_request_date IS NOT NULL").
		Where("approval_request_date < ?", before).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter tripapimodels.TripFilter) *gorm.DB {
	if filter.ProjectNumber != "" {
		tx = tx.Where("project_number like ?", "%"+filter.ProjectNumber+"%")
	}
	if filter.Department != "" {
		tx = tx.Where("department like ?", "%"+filter.Department+"%")
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		tx = tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
			tx = tx.Where("start_date >= ?", from)
		}
	}
	if filter.DateTo != "" {
		if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			tx = tx.Where("end_date <= ?", to)
		}
	}
	if filter.OnlyActivated {
		tx = tx.Where("is_activated = ?", true)
	}
	return tx
}
