package dto

type RecordShipmentRequest struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Customer string `json:"customer"`
	Notes    string `json:"notes"`
}

type ShipmentResponse struct {
	ID        string `json:"id"`
	BatchID   string `json:"batch_id"`
	Date      string `json:"date"`
	Quantity  int    `json:"quantity"`
	Customer  string `json:"customer"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}
