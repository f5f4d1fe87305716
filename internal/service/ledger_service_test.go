package service

import (
	"context"
	"testing"
	"time"

	"fernledger/internal/apperr"
	"fernledger/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture() (*stubStore, LedgerService, *stubShipmentRepo) {
	store := newStubStore()
	shipments := &stubShipmentRepo{store: store}
	svc := NewLedgerService(&stubBatchRepo{store: store}, shipments, nil, nil)
	return store, svc, shipments
}

func TestRecordShipmentReducesAvailable(t *testing.T) {
	store, svc, shipments := newLedgerFixture()
	b := store.seedBatch("B-2026-001", "鹿角蕨", "medium", 100, nil)

	resp, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{
		Quantity: 30,
		Date:     "2026-03-15",
		Customer: "Green Atrium Hotel",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Quantity)
	assert.Equal(t, "2026-03-15", resp.Date)
	assert.Equal(t, b.ID.String(), resp.BatchID)

	_, err = svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 30})
	require.NoError(t, err)

	shipped, err := shipments.SumForBatch(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, shipped)
}

func TestRecordShipmentExactDepletion(t *testing.T) {
	store, svc, _ := newLedgerFixture()
	b := store.seedBatch("B-2026-002", "黃金葛", "small", 40, nil)

	_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 40})
	require.NoError(t, err, "shipping exactly the available quantity must succeed")

	_, err = svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 1})
	stockErr, ok := apperr.AsInsufficientStock(err)
	require.True(t, ok)
	assert.Equal(t, 1, stockErr.Requested)
	assert.Equal(t, 0, stockErr.Available)
}

func TestRecordShipmentInsufficientStock(t *testing.T) {
	store, svc, shipments := newLedgerFixture()
	b := store.seedBatch("B-2026-003", "龜背芋", "medium", 10, nil)

	_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 11})
	stockErr, ok := apperr.AsInsufficientStock(err)
	require.True(t, ok)
	assert.Equal(t, 11, stockErr.Requested)
	assert.Equal(t, 10, stockErr.Available)

	// The rejected shipment must leave no trace in the ledger.
	shipped, err := shipments.SumForBatch(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, shipped)
}

func TestRecordShipmentSequentialExhaustion(t *testing.T) {
	store, svc, _ := newLedgerFixture()
	b := store.seedBatch("B-2026-004", "虎尾蘭", "large", 5, nil)

	for _, qty := range []int{3, 2} {
		_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: qty})
		require.NoError(t, err)
	}

	_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 1})
	_, ok := apperr.AsInsufficientStock(err)
	assert.True(t, ok, "ledger is exhausted, any further shipment must fail")
}

func TestRecordShipmentRejectsNonPositiveQuantity(t *testing.T) {
	store, svc, _ := newLedgerFixture()
	b := store.seedBatch("B-2026-005", "波士頓蕨", "medium", 20, nil)

	for _, qty := range []int{0, -5} {
		_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: qty})
		assert.True(t, apperr.IsValidation(err), "quantity %d must be rejected", qty)
	}
}

func TestRecordShipmentInvalidDate(t *testing.T) {
	store, svc, _ := newLedgerFixture()
	b := store.seedBatch("B-2026-006", "黃金葛", "medium", 20, nil)

	_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{
		Quantity: 5,
		Date:     "15/03/2026",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestRecordShipmentUnknownBatch(t *testing.T) {
	_, svc, _ := newLedgerFixture()

	_, err := svc.RecordShipment(context.Background(), uuid.New(), dto.RecordShipmentRequest{Quantity: 5})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteShipmentRestoresAvailability(t *testing.T) {
	store, svc, _ := newLedgerFixture()
	b := store.seedBatch("B-2026-007", "琴葉榕", "medium", 50, nil)

	resp, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 40})
	require.NoError(t, err)

	// 10 left: a 50-unit shipment must be rejected.
	_, err = svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 50})
	_, ok := apperr.AsInsufficientStock(err)
	require.True(t, ok)

	// Deleting the ledger entry frees the quantity on the next read.
	require.NoError(t, svc.DeleteShipment(context.Background(), uuid.MustParse(resp.ID)))

	_, err = svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 50})
	assert.NoError(t, err)
}

func TestDeleteShipmentNotFound(t *testing.T) {
	_, svc, _ := newLedgerFixture()

	err := svc.DeleteShipment(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestReconcileClampsNegativeTotals(t *testing.T) {
	store, svc, _ := newLedgerFixture()
	b := store.seedBatch("B-2026-008", "鹿角蕨", "medium", 10, nil)

	// A corrupt ledger (manual edits, historical bug) can exceed the initial
	// quantity. The derived availability clamps at zero instead of going
	// negative, so the batch reads as depleted.
	store.seedShipment(b.ID, 9, time.Now())
	store.seedShipment(b.ID, 6, time.Now())

	_, err := svc.RecordShipment(context.Background(), b.ID, dto.RecordShipmentRequest{Quantity: 1})
	stockErr, ok := apperr.AsInsufficientStock(err)
	require.True(t, ok)
	assert.Equal(t, 0, stockErr.Available)
}
