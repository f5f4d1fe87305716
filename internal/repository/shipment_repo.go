package repository

import (
	"context"

	"fernledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentRepository is the append-only shipment ledger for all batches.
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ShipmentRecord, error)
	ListForBatch(ctx context.Context, batchID uuid.UUID) ([]model.ShipmentRecord, error)
	SumForBatch(ctx context.Context, batchID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside shipment transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, rec *model.ShipmentRecord) error
	SumForBatchTx(tx *gorm.DB, batchID uuid.UUID) (int, error)
}

type shipmentRepo struct{ db *gorm.DB }

func NewShipmentRepository(db *gorm.DB) ShipmentRepository { return &shipmentRepo{db: db} }

func (r *shipmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ShipmentRecord, error) {
	var rec model.ShipmentRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *shipmentRepo) ListForBatch(ctx context.Context, batchID uuid.UUID) ([]model.ShipmentRecord, error) {
	var recs []model.ShipmentRecord
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("shipped_at ASC").
		Find(&recs).Error
	return recs, err
}

func (r *shipmentRepo) SumForBatch(ctx context.Context, batchID uuid.UUID) (int, error) {
	return sumQuantities(r.db.WithContext(ctx), batchID)
}

func (r *shipmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ShipmentRecord{}, "id = ?", id).Error
}

func (r *shipmentRepo) CreateTx(tx *gorm.DB, rec *model.ShipmentRecord) error {
	return tx.Create(rec).Error
}

func (r *shipmentRepo) SumForBatchTx(tx *gorm.DB, batchID uuid.UUID) (int, error) {
	return sumQuantities(tx, batchID)
}

func sumQuantities(db *gorm.DB, batchID uuid.UUID) (int, error) {
	var total int64
	err := db.Model(&model.ShipmentRecord{}).
		Where("batch_id = ?", batchID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}
