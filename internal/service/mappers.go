package service

import (
	"time"

	"fernledger/internal/carbon"
	"fernledger/internal/dto"
	"fernledger/internal/model"

	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// reconcile derives the available quantity from the initial quantity and the
// summed shipment ledger. The result is floored at zero: a negative raw total
// means the non-negative-stock invariant was violated upstream, which is a
// symptom to log, never to hide.
func reconcile(b *model.Batch, shipped int) int {
	current := b.InitialQuantity - shipped
	if current < 0 {
		log.Warn().
			Str("batch_id", b.ID.String()).
			Str("batch_number", b.BatchNumber).
			Int("initial_quantity", b.InitialQuantity).
			Int("shipped_total", shipped).
			Msg("ledger total exceeds initial quantity, clamping to zero")
		return 0
	}
	return current
}

func sumShipments(recs []model.ShipmentRecord) int {
	total := 0
	for _, r := range recs {
		total += r.Quantity
	}
	return total
}

func shipmentToResponse(s *model.ShipmentRecord) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:        s.ID.String(),
		BatchID:   s.BatchID.String(),
		Date:      s.ShippedAt.Format(dateLayout),
		Quantity:  s.Quantity,
		Customer:  s.Customer,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func growthToResponse(g *model.GrowthRecord) dto.GrowthRecordResponse {
	return dto.GrowthRecordResponse{
		ID:               g.ID.String(),
		BatchID:          g.BatchID.String(),
		Date:             g.RecordedAt.Format(dateLayout),
		Notes:            g.Notes,
		PhotoURL:         g.PhotoURL,
		ObservedQuantity: g.ObservedQuantity,
		CreatedAt:        g.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func estimateToResponse(e carbon.Estimate) *dto.AbsorptionResponse {
	return &dto.AbsorptionResponse{
		Value:         e.Value.Round(2),
		Low:           e.Low.Round(2),
		High:          e.High.Round(2),
		Yearly:        e.Yearly.Round(2),
		Factor:        e.Factor,
		ElapsedDays:   e.ElapsedDays,
		ElapsedMonths: e.ElapsedMonths.Round(2),
	}
}

// batchToResponse maps a batch (with preloaded sub-records) to its API shape,
// reconciling the current quantity and attaching the absorption estimate.
func batchToResponse(b *model.Batch, calc *carbon.Calculator, now time.Time) dto.BatchResponse {
	current := reconcile(b, sumShipments(b.Shipments))

	var inStock *string
	if b.InStockDate != nil {
		s := b.InStockDate.Format(dateLayout)
		inStock = &s
	}

	var absorption *dto.AbsorptionResponse
	if est, ok := calc.Estimate(b.PlantType, b.PlantSize, current, b.InStockDate, now); ok {
		absorption = estimateToResponse(est)
	}

	shipments := make([]dto.ShipmentResponse, 0, len(b.Shipments))
	for i := range b.Shipments {
		shipments = append(shipments, shipmentToResponse(&b.Shipments[i]))
	}
	growth := make([]dto.GrowthRecordResponse, 0, len(b.GrowthRecords))
	for i := range b.GrowthRecords {
		growth = append(growth, growthToResponse(&b.GrowthRecords[i]))
	}

	return dto.BatchResponse{
		ID:              b.ID.String(),
		BatchNumber:     b.BatchNumber,
		PlantType:       b.PlantType,
		PlantSize:       b.PlantSize,
		InitialQuantity: b.InitialQuantity,
		CurrentQuantity: current,
		InStockDate:     inStock,
		Supplier:        b.Supplier,
		Notes:           b.Notes,
		PhotoURL:        b.PhotoURL,
		Absorption:      absorption,
		Shipments:       shipments,
		GrowthRecords:   growth,
		CreatedAt:       b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// summarize folds all batches into portfolio totals. Per-batch estimates are
// summed unrounded so aggregation does not compound rounding error; rounding
// to 2 dp happens once, here, at the presentation edge. Batches with zero
// current quantity stay out of every total but remain visible in listings.
func summarize(batches []model.Batch, calc *carbon.Calculator, now time.Time) dto.SummaryResponse {
	var summary dto.SummaryResponse
	for i := range batches {
		b := &batches[i]
		current := reconcile(b, sumShipments(b.Shipments))
		if current <= 0 {
			continue
		}
		summary.TotalQuantity += current
		summary.ActiveBatchCount++
		if est, ok := calc.Estimate(b.PlantType, b.PlantSize, current, b.InStockDate, now); ok {
			summary.TotalAbsorption.Value = summary.TotalAbsorption.Value.Add(est.Value)
			summary.TotalAbsorption.Low = summary.TotalAbsorption.Low.Add(est.Low)
			summary.TotalAbsorption.High = summary.TotalAbsorption.High.Add(est.High)
		}
	}
	summary.TotalAbsorption.Value = summary.TotalAbsorption.Value.Round(2)
	summary.TotalAbsorption.Low = summary.TotalAbsorption.Low.Round(2)
	summary.TotalAbsorption.High = summary.TotalAbsorption.High.Round(2)
	return summary
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
