package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaviCMachado/my-price-tracker/internal/dto"
	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// PriceRecordRepository defines the data access contract for price records.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PriceRecordRepository interface {
	Create(ctx context.Context, r *model.PriceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PriceRecord, error)
	// List returns a page of records, newest first.
	List(ctx context.Context, filter dto.RecordFilter) ([]model.PriceRecord, int64, error)
	// ListAll returns the full snapshot for the derived-view functions.
	ListAll(ctx context.Context) ([]model.PriceRecord, error)
	// UpdateFields overwrites only the editable columns — recorded_at and
	// display_date are deliberately excluded.
	UpdateFields(ctx context.Context, r *model.PriceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type priceRecordRepo struct{ db *gorm.DB }

func NewPriceRecordRepository(db *gorm.DB) PriceRecordRepository { return &priceRecordRepo{db: db} }

func (r *priceRecordRepo) Create(ctx context.Context, rec *model.PriceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *priceRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PriceRecord, error) {
	var rec model.PriceRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *priceRecordRepo) List(ctx context.Context, filter dto.RecordFilter) ([]model.PriceRecord, int64, error) {
	var records []model.PriceRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PriceRecord{})
	if filter.Search != "" {
		q = q.Where("product ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	// id DESC as tie-break keeps pagination stable across equal timestamps
	err := q.Order("recorded_at DESC, id DESC").Limit(filter.Limit).Offset(offset).Find(&records).Error
	return records, total, err
}

func (r *priceRecordRepo) ListAll(ctx context.Context) ([]model.PriceRecord, error) {
	var records []model.PriceRecord
	err := r.db.WithContext(ctx).Find(&records).Error
	return records, err
}

func (r *priceRecordRepo) UpdateFields(ctx context.Context, rec *model.PriceRecord) error {
	return r.db.WithContext(ctx).Model(&model.PriceRecord{}).Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"product":    rec.Product,
			"store_name": rec.StoreName,
			"price":      rec.Price,
			"promo_flag": rec.PromoFlag,
		}).Error
}

func (r *priceRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PriceRecord{}, id).Error
}
