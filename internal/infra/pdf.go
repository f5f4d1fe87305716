package infra

// pdf.go — portfolio carbon report generation using go-pdf/fpdf.
// One A4 page: portfolio totals up top, then a per-batch table. The core
// fonts are latin-only, so the table identifies batches by their batch number
// (always ASCII) rather than the plant type.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fernledger/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateSummaryPDF writes the current portfolio report to storagePath and
// returns the absolute path of the generated file.
func GenerateSummaryPDF(summary dto.SummaryResponse, batches []dto.BatchResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("carbon_report_%s.pdf", time.Now().UTC().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Fernledger Carbon Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().UTC().Format(time.RFC3339), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Portfolio totals ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Portfolio", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Active batches: %d", summary.ActiveBatchCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Plants in stock: %d", summary.TotalQuantity), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Absorption: %s kg CO2 (band %s - %s)",
		summary.TotalAbsorption.Value.StringFixed(2),
		summary.TotalAbsorption.Low.StringFixed(2),
		summary.TotalAbsorption.High.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Per-batch table ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 7, "Batch", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "In stock", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Days", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "kg CO2", "B", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, "Band", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, b := range batches {
		value, band, days := "-", "-", "-"
		if b.Absorption != nil {
			value = b.Absorption.Value.StringFixed(2)
			band = b.Absorption.Low.StringFixed(2) + " - " + b.Absorption.High.StringFixed(2)
			days = fmt.Sprintf("%d", b.Absorption.ElapsedDays)
		}
		pdf.CellFormat(45, 6, b.BatchNumber, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", b.CurrentQuantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, days, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, band, "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
