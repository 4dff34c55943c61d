package geohistorystore

import (
	"gorm.io/gorm"

	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.GeoLocationHistory) (id string, err error)
	ListByTrip(tripID string) (list []dbmodels.GeoLocationHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.GeoLocationHistory) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByTrip(tripID string) (list []dbmodels.GeoLocationHistory, err error) {
	list = []dbmodels.GeoLocationHistory{}
	err = i.db.
		Model(&dbmodels.GeoLocationHistory{}).
		Where("trip_id = ?", tripID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
