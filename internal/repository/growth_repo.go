package repository

import (
	"context"

	"fernledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GrowthRepository interface {
	Create(ctx context.Context, rec *model.GrowthRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GrowthRecord, error)
	ListForBatch(ctx context.Context, batchID uuid.UUID) ([]model.GrowthRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type growthRepo struct{ db *gorm.DB }

func NewGrowthRepository(db *gorm.DB) GrowthRepository { return &growthRepo{db: db} }

func (r *growthRepo) Create(ctx context.Context, rec *model.GrowthRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *growthRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.GrowthRecord, error) {
	var rec model.GrowthRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *growthRepo) ListForBatch(ctx context.Context, batchID uuid.UUID) ([]model.GrowthRecord, error) {
	var recs []model.GrowthRecord
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("recorded_at ASC").
		Find(&recs).Error
	return recs, err
}

func (r *growthRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GrowthRecord{}, "id = ?", id).Error
}
