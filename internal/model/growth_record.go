package model

import (
	"time"

	"github.com/google/uuid"
)

// GrowthRecord is an append-only evidentiary note for a batch: date, free
// text, optional photo. ObservedQuantity is informational only — it never
// feeds the stock invariant.
type GrowthRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RecordedAt       time.Time `gorm:"not null"`
	Notes            string
	PhotoURL         string
	ObservedQuantity *int
	CreatedAt        time.Time

	Batch *Batch `gorm:"foreignKey:BatchID"`
}
