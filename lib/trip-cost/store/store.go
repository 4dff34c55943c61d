package tripcoststore

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"business-trips-backend/lib/utils/apperrors"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TripCost) (id string, err error)
	GetByID(tripID, id string) (rec *dbmodels.TripCost, err error)
	Update(tripID, id string, updMap map[string]interface{}) error
	Delete(tripID, id string) error
	ListByTrip(tripID string) (list []dbmodels.TripCost, err error)
	SumByTrip(tripID string) (sum decimal.Decimal, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (p *impl) Create(rec dbmodels.TripCost) (id string, err error) {
	err = p.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (p *impl) GetByID(tripID, id string) (rec *dbmodels.TripCost, err error) {
	rec = &dbmodels.TripCost{}
	err = p.db.
		Where("trip_id = ?", tripID).
		First(rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *impl) Update(tripID, id string, updMap map[string]interface{}) error {
	result := p.db.
		Model(&dbmodels.TripCost{}).
		Where("trip_id = ?", tripID).
		Where("id = ?", id).
		Updates(updMap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New("запись не найдена")
	}
	return nil
}

func (p *impl) Delete(tripID, id string) error {
	result := p.db.
		Where("trip_id = ?", tripID).
		Delete(&dbmodels.TripCost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New("запись не найдена")
	}
	return nil
}

func (p *impl) ListByTrip(tripID string) (list []dbmodels.TripCost, err error) {
	err = p.db.
		Where("trip_id = ?", tripID).
		Order("created_at").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (p *impl) SumByTrip(tripID string) (sum decimal.Decimal, err error) {
	var value decimal.NullDecimal
	err = p.db.
		Model(&dbmodels.TripCost{}).
		Where("trip_id = ?", tripID).
		Select("sum(amount)").
		Scan(&value).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !value.Valid {
		return decimal.Zero, nil
	}
	return value.Decimal, nil
}
