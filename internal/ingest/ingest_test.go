package ingest

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pesatrack/sms-parser/internal/logger"
	"github.com/pesatrack/sms-parser/internal/models"
	"github.com/pesatrack/sms-parser/internal/parser"
	"github.com/pesatrack/sms-parser/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	engine := parser.New(parser.WithProviderRegistry(st.IsRegisteredProvider))
	return New(engine, st, logger.NewWithWriter(io.Discard)), st
}

const acceptedSMS = "CCC3H3KXJZV Imethibitishwa. Umepokea TSh10,000.00 kutoka 255712345678 - JOHN DOE. Salio jipya ni TSh50,000.00"

func TestHandleAccepted(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.Handle(acceptedSMS, "MPESA")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Saved || res.Rejected || res.Error != "" {
		t.Fatalf("result = %+v, want saved", res)
	}
	if res.ID == "" {
		t.Error("accepted result has no id")
	}
	if res.Parsed == nil || res.Parsed.Type != models.TypeReceived {
		t.Errorf("parsed = %+v", res.Parsed)
	}

	stored, err := st.ListTransactions("", 0)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != res.ID {
		t.Errorf("stored rows = %+v", stored)
	}
}

func TestHandleRejected(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.Handle("habari za asubuhi", "")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Rejected || res.Saved {
		t.Fatalf("result = %+v, want rejected", res)
	}

	rejected, err := st.ListRejected(0)
	if err != nil {
		t.Fatalf("ListRejected: %v", err)
	}
	if len(rejected) != 1 {
		t.Fatalf("rejected rows = %d, want 1", len(rejected))
	}
	if rejected[0].Reason != RejectionReason {
		t.Errorf("Reason = %q, want %q", rejected[0].Reason, RejectionReason)
	}
	if rejected[0].Sender != models.UnknownName {
		t.Errorf("Sender = %q, want %q", rejected[0].Sender, models.UnknownName)
	}

	// A recognized provider is still rejected when the type is unknown.
	res, err = svc.Handle("habari za asubuhi", "MPESA")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Rejected {
		t.Errorf("result = %+v, want rejected", res)
	}
}

func TestHandleDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Handle(acceptedSMS, "MPESA"); err != nil {
		t.Fatalf("first Handle: %v", err)
	}
	res, err := svc.Handle(acceptedSMS, "MPESA")
	if err != nil {
		t.Fatalf("second Handle: %v", err)
	}
	if res.Saved || res.Rejected {
		t.Errorf("result = %+v, want neither saved nor rejected", res)
	}
	if res.Error != "duplicate transaction" {
		t.Errorf("Error = %q, want %q", res.Error, "duplicate transaction")
	}
	if res.Parsed == nil {
		t.Error("duplicate result should still carry the parsed record")
	}
}

func TestHandleEmptyText(t *testing.T) {
	svc, _ := newTestService(t)

	for _, text := range []string{"", "  ", "\r\n\t"} {
		if _, err := svc.Handle(text, "MPESA"); !errors.Is(err, parser.ErrEmptyMessage) {
			t.Errorf("Handle(%q) error = %v, want ErrEmptyMessage", text, err)
		}
	}
}

func TestHandleFlattensControlCharacters(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.Handle("CCC3H3KXJZV Imethibitishwa.\r\nUmepokea TSh10,000.00\tkutoka JOHN DOE", "MPESA")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Saved {
		t.Fatalf("result = %+v, want saved", res)
	}

	stored, err := st.ListTransactions("", 0)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored rows = %d, want 1", len(stored))
	}
	if raw := stored[0].RawText; strings.ContainsAny(raw, "\r\n\t") {
		t.Errorf("stored raw text still has control chars: %q", raw)
	}
}
