package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"fernledger/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertWorker sends stock-depletion notification emails. Alerts are
// best-effort operational signals; delivery failures retry through the queue
// and end up in the DLQ, never back in the request path.
type AlertWorker struct {
	mailer *infra.Mailer
	to     string
}

func NewAlertWorker(mailer *infra.Mailer, to string) *AlertWorker {
	return &AlertWorker{mailer: mailer, to: to}
}

func (w *AlertWorker) Handle(_ context.Context, payload json.RawMessage) error {
	var p DepletionAlertPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("alert: bad payload: %w", err)
	}
	if w.to == "" {
		log.Debug().Str("batch_number", p.BatchNumber).Msg("alert: no recipient configured, dropping")
		return nil
	}

	subject := fmt.Sprintf("Batch %s depleted", p.BatchNumber)
	body := fmt.Sprintf(
		"Batch %s (%s) has shipped its full initial quantity and now has zero plants in stock.\nBatch id: %s\n",
		p.BatchNumber, p.PlantType, p.BatchID,
	)
	if err := w.mailer.SendAlert(w.to, subject, body); err != nil {
		return fmt.Errorf("alert: send: %w", err)
	}

	log.Info().Str("batch_number", p.BatchNumber).Msg("alert: depletion email sent")
	return nil
}
