package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fernledger/internal/apperr"
	"fernledger/internal/dto"
	"fernledger/internal/infra"
	"fernledger/internal/model"
	"fernledger/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GrowthService keeps the append-only evidentiary log per batch. Growth
// records never touch the stock invariant — the observed quantity is a note,
// not a correction.
type GrowthService interface {
	Add(ctx context.Context, batchID uuid.UUID, req dto.AddGrowthRecordRequest, photo *PhotoUpload) (*dto.GrowthRecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type growthService struct {
	batches repository.BatchRepository
	growth  repository.GrowthRepository
	photos  infra.PhotoStore // nil disables photo upload
}

func NewGrowthService(
	batches repository.BatchRepository,
	growth repository.GrowthRepository,
	photos infra.PhotoStore,
) GrowthService {
	return &growthService{batches: batches, growth: growth, photos: photos}
}

func (s *growthService) Add(ctx context.Context, batchID uuid.UUID, req dto.AddGrowthRecordRequest, photo *PhotoUpload) (*dto.GrowthRecordResponse, error) {
	if _, err := s.batches.FindByID(ctx, batchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("batch")
		}
		return nil, apperr.NewStorage("find batch", err)
	}

	recordedAt := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, apperr.NewValidation("invalid date %q", req.Date)
		}
		recordedAt = d
	}

	rec := model.GrowthRecord{
		BatchID:          batchID,
		RecordedAt:       recordedAt,
		Notes:            req.Notes,
		ObservedQuantity: req.ObservedQuantity,
		PhotoURL:         s.uploadPhoto(ctx, batchID, photo),
	}
	if err := s.growth.Create(ctx, &rec); err != nil {
		return nil, apperr.NewStorage("create growth record", err)
	}

	resp := growthToResponse(&rec)
	return &resp, nil
}

// uploadPhoto mirrors the batch-create rule: upload failures degrade to an
// empty reference and never block the write.
func (s *growthService) uploadPhoto(ctx context.Context, batchID uuid.UUID, photo *PhotoUpload) string {
	if photo == nil || s.photos == nil {
		return ""
	}
	key := fmt.Sprintf("growth/%s/%d_%s", batchID, time.Now().UTC().UnixMilli(), photo.FileName)
	url, err := s.photos.Upload(ctx, key, photo.ContentType, photo.Reader)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("photo upload failed, continuing without reference")
		return ""
	}
	return url
}

func (s *growthService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.growth.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("growth record")
		}
		return apperr.NewStorage("find growth record", err)
	}
	if err := s.growth.Delete(ctx, id); err != nil {
		return apperr.NewStorage("delete growth record", err)
	}
	return nil
}
