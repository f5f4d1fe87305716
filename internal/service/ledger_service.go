package service

import (
	"context"
	"errors"
	"time"

	"fernledger/internal/apperr"
	"fernledger/internal/dto"
	"fernledger/internal/model"
	"fernledger/internal/repository"
	"fernledger/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LedgerService owns the shipment ledger: the only read-modify-write path in
// the system. RecordShipment must be atomic with respect to the
// stock-sufficiency check, otherwise two concurrent shipments can each
// observe sufficient stock and together oversell the batch.
type LedgerService interface {
	RecordShipment(ctx context.Context, batchID uuid.UUID, req dto.RecordShipmentRequest) (*dto.ShipmentResponse, error)
	DeleteShipment(ctx context.Context, id uuid.UUID) error
}

type ledgerService struct {
	batches    repository.BatchRepository
	shipments  repository.ShipmentRepository
	dispatcher *worker.Dispatcher // nil disables async alerts
	cache      *SummaryCache
}

func NewLedgerService(
	batches repository.BatchRepository,
	shipments repository.ShipmentRepository,
	dispatcher *worker.Dispatcher,
	cache *SummaryCache,
) LedgerService {
	return &ledgerService{
		batches:    batches,
		shipments:  shipments,
		dispatcher: dispatcher,
		cache:      cache,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// RecordShipment appends a shipment after verifying stock sufficiency.
// The batch row is locked FOR UPDATE for the duration of the transaction, so
// the check-available-then-append sequence is serialized per batch id:
// concurrent shipments totalling more than the available stock get exactly
// enough acceptances to exhaust it, and the rest fail with
// InsufficientStockError.
func (s *ledgerService) RecordShipment(ctx context.Context, batchID uuid.UUID, req dto.RecordShipmentRequest) (*dto.ShipmentResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.NewValidation("shipment quantity must be positive, got %d", req.Quantity)
	}

	shippedAt := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, apperr.NewValidation("invalid shipment date %q", req.Date)
		}
		shippedAt = d
	}

	var rec model.ShipmentRecord
	var depleted bool
	txErr := runTx(ctx, s.batches.DB(), func(tx *gorm.DB) error {
		batch, err := s.batches.FindByIDTxLocked(tx, batchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("batch")
			}
			return apperr.NewStorage("lock batch", err)
		}

		shipped, err := s.shipments.SumForBatchTx(tx, batchID)
		if err != nil {
			return apperr.NewStorage("sum shipments", err)
		}

		available := reconcile(batch, shipped)
		if req.Quantity > available {
			return &apperr.InsufficientStockError{Requested: req.Quantity, Available: available}
		}

		rec = model.ShipmentRecord{
			BatchID:   batchID,
			ShippedAt: shippedAt,
			Quantity:  req.Quantity,
			Customer:  req.Customer,
			Notes:     req.Notes,
		}
		if err := s.shipments.CreateTx(tx, &rec); err != nil {
			return apperr.NewStorage("create shipment", err)
		}

		depleted = available == req.Quantity
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx)

	// Depletion alert is best-effort — fire & forget.
	if depleted && s.dispatcher != nil {
		batch, err := s.batches.FindByID(ctx, batchID)
		if err == nil {
			payload := worker.DepletionAlertPayload{
				BatchID:     batch.ID.String(),
				BatchNumber: batch.BatchNumber,
				PlantType:   batch.PlantType,
			}
			if err := s.dispatcher.EnqueueDepletionAlert(ctx, payload); err != nil {
				log.Warn().Err(err).Str("batch_id", batchID.String()).Msg("failed to enqueue depletion alert")
			}
		}
	}

	resp := shipmentToResponse(&rec)
	return &resp, nil
}

// DeleteShipment removes one ledger entry. The freed quantity reappears on
// the next read because availability is always derived from the remaining
// ledger, never adjusted by a delta — concurrent deletes converge regardless
// of interleaving.
func (s *ledgerService) DeleteShipment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.shipments.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("shipment")
		}
		return apperr.NewStorage("find shipment", err)
	}
	if err := s.shipments.Delete(ctx, id); err != nil {
		return apperr.NewStorage("delete shipment", err)
	}
	s.cache.Invalidate(ctx)
	return nil
}
