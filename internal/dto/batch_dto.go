package dto

import "github.com/shopspring/decimal"

// CreateBatchRequest is bound from multipart form data so an evidentiary
// photo can ride along with the intake. Only the batch number is required.
type CreateBatchRequest struct {
	BatchNumber     string `form:"batch_number" json:"batch_number" validate:"required"`
	PlantType       string `form:"plant_type" json:"plant_type"`
	PlantSize       string `form:"plant_size" json:"plant_size" validate:"omitempty,oneof=small medium large"`
	InitialQuantity int    `form:"initial_quantity" json:"initial_quantity" validate:"min=0"`
	InStockDate     string `form:"in_stock_date" json:"in_stock_date" validate:"omitempty,datetime=2006-01-02"`
	Supplier        string `form:"supplier" json:"supplier"`
	Notes           string `form:"notes" json:"notes"`
}

// AbsorptionResponse carries the per-batch carbon estimate. Figures are
// rounded to 2 decimal places for presentation only.
type AbsorptionResponse struct {
	Value         decimal.Decimal `json:"value"`
	Low           decimal.Decimal `json:"low"`
	High          decimal.Decimal `json:"high"`
	Yearly        decimal.Decimal `json:"yearly"`
	Factor        decimal.Decimal `json:"factor"`
	ElapsedDays   int             `json:"elapsed_days"`
	ElapsedMonths decimal.Decimal `json:"elapsed_months"`
}

type BatchResponse struct {
	ID              string                 `json:"id"`
	BatchNumber     string                 `json:"batch_number"`
	PlantType       string                 `json:"plant_type"`
	PlantSize       string                 `json:"plant_size"`
	InitialQuantity int                    `json:"initial_quantity"`
	CurrentQuantity int                    `json:"current_quantity"`
	InStockDate     *string                `json:"in_stock_date"`
	Supplier        string                 `json:"supplier"`
	Notes           string                 `json:"notes"`
	PhotoURL        string                 `json:"photo_url"`
	Absorption      *AbsorptionResponse    `json:"absorption"` // nil when no estimate
	Shipments       []ShipmentResponse     `json:"shipments"`
	GrowthRecords   []GrowthRecordResponse `json:"growth_records"`
	CreatedAt       string                 `json:"created_at"`
}

type BatchListResponse struct {
	Data    []BatchResponse `json:"data"`
	Summary SummaryResponse `json:"summary"`
}
