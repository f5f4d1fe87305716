package dto

// AddGrowthRecordRequest is bound from multipart form data (optional photo
// file alongside). The observed quantity is informational only and never
// feeds the stock invariant.
type AddGrowthRecordRequest struct {
	Date             string `form:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes            string `form:"notes" json:"notes"`
	ObservedQuantity *int   `form:"observed_quantity" json:"observed_quantity" validate:"omitempty,min=0"`
}

type GrowthRecordResponse struct {
	ID               string `json:"id"`
	BatchID          string `json:"batch_id"`
	Date             string `json:"date"`
	Notes            string `json:"notes"`
	PhotoURL         string `json:"photo_url"`
	ObservedQuantity *int   `json:"observed_quantity"`
	CreatedAt        string `json:"created_at"`
}
