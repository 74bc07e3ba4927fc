// Package writer exports parsed transactions as CSV.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/pesatrack/sms-parser/internal/models"
)

// CSVWriter writes transaction records in CSV format.
type CSVWriter struct {
	// IncludeHeader controls the column header row.
	IncludeHeader bool
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.ParsedTransaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.ParsedTransaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		header := []string{"Date", "Provider", "Type", "Reference", "Amount", "Fee", "Balance", "Phone", "Name"}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, txn := range txns {
		date := ""
		if txn.TransactionDate != nil {
			date = txn.TransactionDate.Format("2006-01-02 15:04:05")
		}
		row := []string{
			date,
			txn.NetworkProvider,
			txn.Type,
			txn.ReferenceID,
			formatAmount(txn.Amount),
			formatAmount(txn.TransactionFee),
			formatAmount(txn.Balance),
			txn.CustomerPhone,
			txn.CustomerName,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
