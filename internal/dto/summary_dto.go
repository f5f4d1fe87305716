package dto

import "github.com/shopspring/decimal"

// AbsorptionTotals are sums of per-batch unrounded estimates — never a
// recomputation from pooled quantity, because the factor differs per batch.
type AbsorptionTotals struct {
	Value decimal.Decimal `json:"value"`
	Low   decimal.Decimal `json:"low"`
	High  decimal.Decimal `json:"high"`
}

type SummaryResponse struct {
	TotalQuantity    int              `json:"total_quantity"`
	TotalAbsorption  AbsorptionTotals `json:"total_absorption"`
	ActiveBatchCount int              `json:"active_batch_count"`
}
