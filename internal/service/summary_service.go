package service

import (
	"context"
	"time"

	"fernledger/internal/apperr"
	"fernledger/internal/carbon"
	"fernledger/internal/dto"
	"fernledger/internal/infra"
	"fernledger/internal/repository"
)

// SummaryService aggregates per-batch figures into portfolio statistics and
// renders the downloadable report.
type SummaryService interface {
	Get(ctx context.Context) (*dto.SummaryResponse, error)
	Report(ctx context.Context) (string, error)
}

type summaryService struct {
	batches        repository.BatchRepository
	calc           *carbon.Calculator
	cache          *SummaryCache
	pdfStoragePath string
}

func NewSummaryService(
	batches repository.BatchRepository,
	calc *carbon.Calculator,
	cache *SummaryCache,
	pdfStoragePath string,
) SummaryService {
	return &summaryService{
		batches:        batches,
		calc:           calc,
		cache:          cache,
		pdfStoragePath: pdfStoragePath,
	}
}

func (s *summaryService) Get(ctx context.Context) (*dto.SummaryResponse, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, apperr.NewStorage("list batches", err)
	}
	summary := summarize(batches, s.calc, time.Now())

	s.cache.Set(ctx, &summary)
	return &summary, nil
}

// Report generates the portfolio PDF and returns the path of the file.
func (s *summaryService) Report(ctx context.Context) (string, error) {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return "", apperr.NewStorage("list batches", err)
	}

	now := time.Now()
	data := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		data = append(data, batchToResponse(&batches[i], s.calc, now))
	}

	path, err := infra.GenerateSummaryPDF(summarize(batches, s.calc, now), data, s.pdfStoragePath)
	if err != nil {
		return "", apperr.NewStorage("generate report", err)
	}
	return path, nil
}
