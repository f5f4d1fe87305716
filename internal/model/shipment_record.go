package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentRecord is one outgoing quantity event against a batch. The ledger
// of these records is the sole source of truth for how much has left a batch:
// at the instant a shipment is accepted, the sum of all shipment quantities
// for the batch (including the new one) never exceeds InitialQuantity.
type ShipmentRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ShippedAt time.Time `gorm:"not null"`
	Quantity  int       `gorm:"not null"` // always > 0
	Customer  string
	Notes     string
	CreatedAt time.Time

	Batch *Batch `gorm:"foreignKey:BatchID"`
}
