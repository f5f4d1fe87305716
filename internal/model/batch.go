package model

import (
	"time"

	"github.com/google/uuid"
)

// Plant size classes. Unknown values are tolerated and fall back to the
// medium multiplier in the carbon calculator.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Batch is one intake of potted plants. InitialQuantity is the only
// authoritative quantity column; the available quantity is always derived
// from the shipment ledger and never persisted.
type Batch struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchNumber     string    `gorm:"uniqueIndex;not null"` // human business key
	PlantType       string    `gorm:"index;not null"`
	PlantSize       string    `gorm:"not null;default:'medium'"`
	InitialQuantity int       `gorm:"not null;default:0"`
	InStockDate     *time.Time
	Supplier        string
	Notes           string
	PhotoURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// CurrentQuantity is reconciled from the shipment ledger on every read.
	CurrentQuantity int `gorm:"-"`

	Shipments     []ShipmentRecord `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
	GrowthRecords []GrowthRecord   `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
}
