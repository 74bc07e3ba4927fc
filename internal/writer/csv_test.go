package writer

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesatrack/sms-parser/internal/models"
)

func sampleTransactions() []models.ParsedTransaction {
	amount := decimal.NewFromInt(10000)
	fee := decimal.NewFromFloat(150.5)
	balance := decimal.NewFromInt(50000)
	date := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)

	return []models.ParsedTransaction{
		{
			ReferenceID:     "CCC3H3KXJZV",
			NetworkProvider: models.ProviderMPesa,
			Type:            models.TypeReceived,
			Amount:          &amount,
			TransactionFee:  &fee,
			Balance:         &balance,
			CustomerPhone:   "255712345678",
			CustomerName:    "JOHN DOE",
			TransactionDate: &date,
		},
		{
			NetworkProvider: models.ProviderUnknown,
			Type:            models.TypeUnknown,
			CustomerName:    models.UnknownName,
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleTransactions()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 records", len(rows))
	}

	wantHeader := []string{"Date", "Provider", "Type", "Reference", "Amount", "Fee", "Balance", "Phone", "Name"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}

	wantFirst := []string{
		"2024-02-01 10:30:00", "M-PESA", "received", "CCC3H3KXJZV",
		"10000.00", "150.50", "50000.00", "255712345678", "JOHN DOE",
	}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Errorf("row = %v, want %v", rows[1], wantFirst)
	}

	// Absent fields become empty cells, not placeholders.
	wantSecond := []string{"", "UNKNOWN", "unknown", "", "", "", "", "", "UNKNOWN"}
	if !reflect.DeepEqual(rows[2], wantSecond) {
		t.Errorf("row = %v, want %v", rows[2], wantSecond)
	}
}

func TestWriteWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleTransactions()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{IncludeHeader: true}
	if err := w.WriteToFile(path, sampleTransactions()); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !bytes.Contains(data, []byte("CCC3H3KXJZV")) {
		t.Errorf("output file missing record: %s", data)
	}
}
