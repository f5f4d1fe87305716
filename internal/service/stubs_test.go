package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"fernledger/internal/model"
	"fernledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory store backing the repository stubs ─────────────────────────────

type stubStore struct {
	mu        sync.Mutex
	batches   map[uuid.UUID]*model.Batch
	shipments map[uuid.UUID]*model.ShipmentRecord
	growth    map[uuid.UUID]*model.GrowthRecord
}

func newStubStore() *stubStore {
	return &stubStore{
		batches:   make(map[uuid.UUID]*model.Batch),
		shipments: make(map[uuid.UUID]*model.ShipmentRecord),
		growth:    make(map[uuid.UUID]*model.GrowthRecord),
	}
}

func (s *stubStore) seedBatch(number, plantType, plantSize string, initial int, inStock *time.Time) *model.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &model.Batch{
		ID:              uuid.New(),
		BatchNumber:     number,
		PlantType:       plantType,
		PlantSize:       plantSize,
		InitialQuantity: initial,
		InStockDate:     inStock,
		CreatedAt:       time.Now().UTC(),
	}
	s.batches[b.ID] = b
	return b
}

func (s *stubStore) seedShipment(batchID uuid.UUID, quantity int, shippedAt time.Time) *model.ShipmentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &model.ShipmentRecord{
		ID:        uuid.New(),
		BatchID:   batchID,
		ShippedAt: shippedAt,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	s.shipments[rec.ID] = rec
	return rec
}

// shipmentsFor emulates the Preload ordering of the real repository.
// Callers must hold s.mu.
func (s *stubStore) shipmentsFor(batchID uuid.UUID) []model.ShipmentRecord {
	var recs []model.ShipmentRecord
	for _, rec := range s.shipments {
		if rec.BatchID == batchID {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ShippedAt.Before(recs[j].ShippedAt) })
	return recs
}

func (s *stubStore) growthFor(batchID uuid.UUID) []model.GrowthRecord {
	var recs []model.GrowthRecord
	for _, rec := range s.growth {
		if rec.BatchID == batchID {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].RecordedAt.Before(recs[j].RecordedAt) })
	return recs
}

func (s *stubStore) loadBatch(id uuid.UUID) (*model.Batch, error) {
	b, ok := s.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	copied.Shipments = s.shipmentsFor(id)
	copied.GrowthRecords = s.growthFor(id)
	return &copied, nil
}

// ── BatchRepository stub ─────────────────────────────────────────────────────

type stubBatchRepo struct{ store *stubStore }

func (r *stubBatchRepo) Create(_ context.Context, b *model.Batch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now().UTC()
	copied := *b
	r.store.batches[b.ID] = &copied
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.loadBatch(id)
}

func (r *stubBatchRepo) List(_ context.Context) ([]model.Batch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []model.Batch
	for id := range r.store.batches {
		b, _ := r.store.loadBatch(id)
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BatchNumber < result[j].BatchNumber })
	return result, nil
}

func (r *stubBatchRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.batches, id)
	// Emulates the ON DELETE CASCADE constraints.
	for sid, rec := range r.store.shipments {
		if rec.BatchID == id {
			delete(r.store.shipments, sid)
		}
	}
	for gid, rec := range r.store.growth {
		if rec.BatchID == id {
			delete(r.store.growth, gid)
		}
	}
	return nil
}

func (r *stubBatchRepo) FindByIDTxLocked(_ *gorm.DB, id uuid.UUID) (*model.Batch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *stubBatchRepo) DB() *gorm.DB { return nil } // unit test mode: runTx calls fn(nil)

var _ repository.BatchRepository = (*stubBatchRepo)(nil)

// ── ShipmentRepository stub ──────────────────────────────────────────────────

type stubShipmentRepo struct{ store *stubStore }

func (r *stubShipmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ShipmentRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.shipments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *stubShipmentRepo) ListForBatch(_ context.Context, batchID uuid.UUID) ([]model.ShipmentRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.shipmentsFor(batchID), nil
}

func (r *stubShipmentRepo) SumForBatch(_ context.Context, batchID uuid.UUID) (int, error) {
	return r.SumForBatchTx(nil, batchID)
}

func (r *stubShipmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.shipments, id)
	return nil
}

func (r *stubShipmentRepo) CreateTx(_ *gorm.DB, rec *model.ShipmentRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()
	copied := *rec
	r.store.shipments[rec.ID] = &copied
	return nil
}

func (r *stubShipmentRepo) SumForBatchTx(_ *gorm.DB, batchID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := 0
	for _, rec := range r.store.shipments {
		if rec.BatchID == batchID {
			total += rec.Quantity
		}
	}
	return total, nil
}

var _ repository.ShipmentRepository = (*stubShipmentRepo)(nil)

// ── GrowthRepository stub ────────────────────────────────────────────────────

type stubGrowthRepo struct{ store *stubStore }

func (r *stubGrowthRepo) Create(_ context.Context, rec *model.GrowthRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()
	copied := *rec
	r.store.growth[rec.ID] = &copied
	return nil
}

func (r *stubGrowthRepo) FindByID(_ context.Context, id uuid.UUID) (*model.GrowthRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.growth[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *stubGrowthRepo) ListForBatch(_ context.Context, batchID uuid.UUID) ([]model.GrowthRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.growthFor(batchID), nil
}

func (r *stubGrowthRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.growth, id)
	return nil
}

var _ repository.GrowthRepository = (*stubGrowthRepo)(nil)

// ── PhotoStore stubs ─────────────────────────────────────────────────────────

type fakePhotoStore struct {
	mu   sync.Mutex
	keys []string
}

func (p *fakePhotoStore) Upload(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return "https://storage.test/" + key, nil
}

type failingPhotoStore struct{}

func (failingPhotoStore) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", errors.New("bucket unreachable")
}
