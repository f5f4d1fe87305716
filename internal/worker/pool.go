package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAlert = "jobs:alert"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks. Attempts counts deliveries
// so a poisoned job lands in the DLQ instead of looping forever.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// DepletionAlertPayload announces that a shipment exhausted a batch's stock.
type DepletionAlertPayload struct {
	BatchID     string `json:"batch_id"`
	BatchNumber string `json:"batch_number"`
	PlantType   string `json:"plant_type"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueDepletionAlert pushes a stock-depletion notification job to Redis.
func (d *Dispatcher) EnqueueDepletionAlert(ctx context.Context, payload DepletionAlertPayload) error {
	return d.enqueue(ctx, QueueAlert, "depletion_alert", payload, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data, Attempts: attempts}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers holds the concrete job processors, wired at the composition root.
type Handlers struct {
	Alert *AlertWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	queues := []string{QueueAlert}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	job.Attempts++

	var err error
	switch job.Type {
	case "depletion_alert":
		err = handlers.Alert.Handle(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
		return
	}
	if err == nil {
		return
	}

	if job.Attempts >= maxAttempts {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}

	log.Warn().
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Err(err).
		Msg("job failed, re-enqueueing")
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		return
	}
	if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
		log.Error().Err(pErr).Str("queue", queue).Msg("failed to re-enqueue job")
	}
}
