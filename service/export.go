package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rapestimate/estimate-parser/dto"
)

const (
	SummarySheet   = "Summary"
	LineItemsSheet = "Line Items"
)

// headerRows fixes the order header fields are written in.
var headerRows = []struct {
	field string
	label string
}{
	{dto.FieldInsuredName, "Insured"},
	{dto.FieldPropertyAddress, "Property"},
	{dto.FieldClaimNumber, "Claim Number"},
	{dto.FieldPolicyNumber, "Policy Number"},
	{dto.FieldDateOfLoss, "Date of Loss"},
	{dto.FieldDeductible, "Deductible"},
}

var lineItemColumns = []string{
	"Line", "Room", "Category", "Description", "Quantity", "Unit",
	"Unit Price", "Tax", "O&P", "RCV", "Depreciation", "ACV",
}

// Exporter renders parse results as XLSX workbooks.
type Exporter struct {
	logger *slog.Logger
}

func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// ExportXLSX renders result with the default exporter.
func ExportXLSX(result *dto.ParseResult) ([]byte, error) {
	return NewExporter(nil).ExportXLSX(result)
}

// ExportXLSX returns a workbook with a category summary sheet and a sheet
// listing every line item.
func (e *Exporter) ExportXLSX(result *dto.ParseResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("xlsx export: nil result")
	}
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, fmt.Errorf("xlsx summary sheet: %w", err)
	}
	if _, err := f.NewSheet(LineItemsSheet); err != nil {
		return nil, fmt.Errorf("xlsx line items sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	if err := writeSummary(f, result, bold); err != nil {
		return nil, fmt.Errorf("xlsx summary: %w", err)
	}
	if err := writeLineItems(f, result.LineItems, bold); err != nil {
		return nil, fmt.Errorf("xlsx line items: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Info("export.xlsx.ok",
		"line_items", len(result.LineItems),
		"categories", len(result.Categories),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// sheetWriter writes to one sheet and keeps the first error; later calls
// are no-ops once an error is recorded.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) row(row int, values ...any) {
	for i, v := range values {
		if w.err != nil {
			return
		}
		var cell string
		if cell, w.err = excelize.CoordinatesToCellName(i+1, row); w.err != nil {
			return
		}
		w.err = w.f.SetCellValue(w.sheet, cell, v)
	}
}

func (w *sheetWriter) bold(row, cols, style int) {
	if w.err != nil {
		return
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, first, last, style)
}

func (w *sheetWriter) width(startCol, endCol string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(w.sheet, startCol, endCol, width)
}

func writeSummary(f *excelize.File, result *dto.ParseResult, bold int) error {
	w := &sheetWriter{f: f, sheet: SummarySheet}

	row := 1
	for _, h := range headerRows {
		if v, ok := result.Header[h.field]; ok {
			w.row(row, h.label, v)
			row++
		}
	}
	if row > 1 {
		row++
	}

	w.row(row, "Category", "Items", "RCV", "Depreciation", "ACV")
	w.bold(row, 5, bold)
	row++

	for _, c := range result.Categories {
		w.row(row, c.Name, c.ItemCount, c.RCV, c.Depreciation, c.ACV)
		row++
	}

	t := result.Totals
	w.row(row, "TOTAL", result.Metadata.TotalLineItems, t.RCV, t.Depreciation, t.ACV)
	w.bold(row, 5, bold)
	row += 2

	w.row(row, "Deductible", "", "", "", t.Deductible)
	row++
	w.row(row, "Net Claim", "", "", "", t.NetClaim)
	w.bold(row, 5, bold)

	w.width("A", "A", 36)
	w.width("B", "B", 40)
	w.width("C", "E", 14)
	return w.err
}

func writeLineItems(f *excelize.File, items []dto.LineItem, bold int) error {
	w := &sheetWriter{f: f, sheet: LineItemsSheet}

	header := make([]any, len(lineItemColumns))
	for i, c := range lineItemColumns {
		header[i] = c
	}
	w.row(1, header...)
	w.bold(1, len(lineItemColumns), bold)

	for i, item := range items {
		w.row(i+2,
			item.LineNumber,
			item.Room,
			item.Category,
			item.Description,
			item.Quantity,
			item.Unit,
			item.UnitPrice,
			item.Tax,
			item.OAndP,
			item.RCV,
			item.Depreciation,
			item.ACV,
		)
	}

	w.width("B", "C", 28)
	w.width("D", "D", 48)
	w.width("E", "L", 12)
	return w.err
}
