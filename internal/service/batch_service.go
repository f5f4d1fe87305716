package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fernledger/internal/apperr"
	"fernledger/internal/carbon"
	"fernledger/internal/dto"
	"fernledger/internal/infra"
	"fernledger/internal/model"
	"fernledger/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PhotoUpload is an optional evidentiary image riding along with a create
// request. A nil *PhotoUpload means no photo was attached.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

type BatchService interface {
	Create(ctx context.Context, req dto.CreateBatchRequest, photo *PhotoUpload) (*dto.BatchResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error)
	List(ctx context.Context) (*dto.BatchListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type batchService struct {
	batches repository.BatchRepository
	photos  infra.PhotoStore // nil disables photo upload
	calc    *carbon.Calculator
	cache   *SummaryCache
}

func NewBatchService(
	batches repository.BatchRepository,
	photos infra.PhotoStore,
	calc *carbon.Calculator,
	cache *SummaryCache,
) BatchService {
	return &batchService{batches: batches, photos: photos, calc: calc, cache: cache}
}

func (s *batchService) Create(ctx context.Context, req dto.CreateBatchRequest, photo *PhotoUpload) (*dto.BatchResponse, error) {
	if strings.TrimSpace(req.BatchNumber) == "" {
		return nil, apperr.NewValidation("batch_number is required")
	}
	if req.InitialQuantity < 0 {
		return nil, apperr.NewValidation("initial_quantity must not be negative")
	}

	var inStock *time.Time
	if req.InStockDate != "" {
		d, err := parseDate(req.InStockDate)
		if err != nil {
			return nil, apperr.NewValidation("invalid in_stock_date %q", req.InStockDate)
		}
		inStock = &d
	}

	size := req.PlantSize
	if size == "" {
		size = model.SizeMedium
	}

	batch := model.Batch{
		BatchNumber:     req.BatchNumber,
		PlantType:       req.PlantType,
		PlantSize:       size,
		InitialQuantity: req.InitialQuantity,
		InStockDate:     inStock,
		Supplier:        req.Supplier,
		Notes:           req.Notes,
		PhotoURL:        s.uploadPhoto(ctx, "batches", req.BatchNumber, photo),
	}
	if err := s.batches.Create(ctx, &batch); err != nil {
		return nil, apperr.NewStorage("create batch", err)
	}

	s.cache.Invalidate(ctx)
	resp := batchToResponse(&batch, s.calc, time.Now())
	return &resp, nil
}

// uploadPhoto stores the photo best-effort. Evidentiary media is not
// load-bearing for the ledger invariant, so a failed upload degrades to an
// empty reference instead of blocking the create.
func (s *batchService) uploadPhoto(ctx context.Context, prefix, owner string, photo *PhotoUpload) string {
	if photo == nil || s.photos == nil {
		return ""
	}
	key := fmt.Sprintf("%s/%s/%d_%s", prefix, owner, time.Now().UTC().UnixMilli(), photo.FileName)
	url, err := s.photos.Upload(ctx, key, photo.ContentType, photo.Reader)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("photo upload failed, continuing without reference")
		return ""
	}
	return url
}

func (s *batchService) Get(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("batch")
		}
		return nil, apperr.NewStorage("find batch", err)
	}
	resp := batchToResponse(batch, s.calc, time.Now())
	return &resp, nil
}

func (s *batchService) List(ctx context.Context) (*dto.BatchListResponse, error) {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, apperr.NewStorage("list batches", err)
	}

	now := time.Now()
	data := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		data = append(data, batchToResponse(&batches[i], s.calc, now))
	}
	return &dto.BatchListResponse{
		Data:    data,
		Summary: summarize(batches, s.calc, now),
	}, nil
}

// Delete removes the batch and, through the cascade constraints, every
// shipment and growth record it owns.
func (s *batchService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.batches.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("batch")
		}
		return apperr.NewStorage("find batch", err)
	}
	if err := s.batches.Delete(ctx, id); err != nil {
		return apperr.NewStorage("delete batch", err)
	}
	s.cache.Invalidate(ctx)
	return nil
}
