// Package export renders processed-document log records as CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"pravaah/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var columns = []string{
	"Timestamp",
	"Document Type",
	"Vendor Name",
	"Total Amount",
	"Invoice Date",
}

// CSVWriter wraps csv.Writer for exporting log records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords writes one row per record.
func (w *CSVWriter) WriteRecords(records []domain.LogRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header and every record to out.
func WriteCSV(out io.Writer, records []domain.LogRecord) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewCSVWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRecords(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func recordToRow(rec *domain.LogRecord) []string {
	return []string{
		rec.Timestamp.UTC().Format(time.RFC3339),
		string(rec.DocType),
		rec.VendorName,
		strconv.FormatFloat(rec.TotalAmount, 'f', 2, 64),
		rec.InvoiceDate,
	}
}
