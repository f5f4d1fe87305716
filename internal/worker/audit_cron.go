package worker

// audit_cron.go
// Background goroutine that periodically re-derives every batch's available
// quantity from the full shipment ledger and surfaces invariant violations
// (raw totals below zero). The read path clamps those to zero for callers;
// this cron makes sure the symptom is seen, not silently absorbed.

import (
	"context"
	"time"

	"fernledger/internal/repository"

	"github.com/rs/zerolog/log"
)

const auditTickInterval = 10 * time.Minute

// AuditCronConfig holds all dependencies for the audit goroutine.
type AuditCronConfig struct {
	Batches  repository.BatchRepository
	Interval time.Duration // zero means auditTickInterval
}

// StartAuditCron launches a background goroutine that rescans the ledger on
// every tick. It respects the context for graceful shutdown.
func StartAuditCron(ctx context.Context, cfg AuditCronConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = auditTickInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("audit_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("audit_cron: shutting down")
				return
			case <-ticker.C:
				runAudit(ctx, cfg)
			}
		}
	}()
}

func runAudit(ctx context.Context, cfg AuditCronConfig) {
	batches, err := cfg.Batches.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("audit_cron: list batches failed")
		return
	}

	violations := 0
	for i := range batches {
		b := &batches[i]
		shipped := 0
		for _, s := range b.Shipments {
			shipped += s.Quantity
		}
		if raw := b.InitialQuantity - shipped; raw < 0 {
			violations++
			log.Warn().
				Str("batch_id", b.ID.String()).
				Str("batch_number", b.BatchNumber).
				Int("initial_quantity", b.InitialQuantity).
				Int("shipped_total", shipped).
				Int("raw_available", raw).
				Msg("audit_cron: ledger invariant violated")
		}
	}

	log.Debug().
		Int("batches", len(batches)).
		Int("violations", violations).
		Msg("audit_cron: pass complete")
}
