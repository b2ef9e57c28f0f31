package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"pravaah/internal/domain"
)

const sheetName = "Processed Logs"

// WriteXLSX writes the records as a single-sheet workbook. Amounts are
// numeric cells with two decimals.
func WriteXLSX(out io.Writer, records []domain.LogRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range records {
		rec := &records[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			rec.Timestamp.UTC().Format(time.RFC3339),
			string(rec.DocType),
			rec.VendorName,
			rec.TotalAmount,
			rec.InvoiceDate,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if len(records) > 0 {
		amountFmt := "#,##0.00"
		numStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
		if err != nil {
			return fmt.Errorf("creating amount style: %w", err)
		}
		last := fmt.Sprintf("D%d", len(records)+1)
		if err := f.SetCellStyle(sheetName, "D2", last, numStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "E", 22)

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
