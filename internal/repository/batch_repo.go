package repository

import (
	"context"

	"fernledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BatchRepository defines the data access contract for batches.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs. Implementations return
// gorm.ErrRecordNotFound for missing rows.
type BatchRepository interface {
	Create(ctx context.Context, b *model.Batch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	List(ctx context.Context) ([]model.Batch, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByIDTxLocked reads the batch row under SELECT ... FOR UPDATE,
	// serializing concurrent shipment transactions per batch id.
	FindByIDTxLocked(tx *gorm.DB, id uuid.UUID) (*model.Batch, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) Create(ctx context.Context, b *model.Batch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *batchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	var b model.Batch
	err := r.db.WithContext(ctx).
		Preload("Shipments", func(db *gorm.DB) *gorm.DB { return db.Order("shipped_at ASC") }).
		Preload("GrowthRecords", func(db *gorm.DB) *gorm.DB { return db.Order("recorded_at ASC") }).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *batchRepo) List(ctx context.Context) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Preload("Shipments", func(db *gorm.DB) *gorm.DB { return db.Order("shipped_at ASC") }).
		Preload("GrowthRecords", func(db *gorm.DB) *gorm.DB { return db.Order("recorded_at ASC") }).
		Order("created_at ASC").
		Find(&batches).Error
	return batches, err
}

// Delete removes the batch row; shipment and growth records go with it via
// the ON DELETE CASCADE constraints.
func (r *batchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Batch{}, "id = ?", id).Error
}

func (r *batchRepo) FindByIDTxLocked(tx *gorm.DB, id uuid.UUID) (*model.Batch, error) {
	var b model.Batch
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *batchRepo) DB() *gorm.DB { return r.db }
