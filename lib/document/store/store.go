package documentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"business-trips-backend/lib/utils/apperrors"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TripDocument) (id string, err error)
	GetByID(tripID, id string) (rec *dbmodels.TripDocument, err error)
	Delete(tripID, id string) error
	ListByTrip(tripID string) (list []dbmodels.TripDocument, err error)
	CountByTrip(tripID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TripDocument) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(tripID, id string) (*dbmodels.TripDocument, error) {
	rec := dbmodels.TripDocument{}
	err := i.db.
		Model(&dbmodels.TripDocument{}).
		Where("id = ?", id).
		Where("trip_id = ?", tripID).
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

func (i impl) Delete(tripID, id string) error {
	tx := i.db.
		Where("id = ?", id).
		Where("trip_id = ?", tripID).
		Delete(&dbmodels.TripDocument{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.New("запись не найдена")
	}
	return nil
}

func (i impl) ListByTrip(tripID string) (list []dbmodels.TripDocument, err error) {
	list = []dbmodels.TripDocument{}
	err = i.db.
		Model(&dbmodels.TripDocument{}).
		Where("trip_id = ?", tripID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByTrip(tripID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.TripDocument{}).
		Where("trip_id = ?", tripID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
