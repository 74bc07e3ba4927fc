// Package parser extracts structured transaction records from free-text
// mobile-money SMS notifications (M-Pesa, TigoPesa/Mixx by Yas, AirtelMoney,
// HaloPesa). Extraction is a pipeline of independent best-effort field
// extractors over immutable pattern tables: a field that cannot be found is
// absent in the result, never an error.
package parser

import (
	"errors"
	"strings"

	"github.com/pesatrack/sms-parser/internal/models"
)

// ErrEmptyMessage is returned by Parse when there is no text to process.
// It is the only error Parse produces.
var ErrEmptyMessage = errors.New("sms text is empty")

// Engine extracts transaction records from SMS messages. It holds only
// immutable pattern tables and injected capabilities, so one Engine is safe
// for concurrent use without locking.
type Engine struct {
	isRegisteredProvider func(name string) bool
	predictor            TypePredictor
}

// Option configures an Engine.
type Option func(*Engine)

// WithProviderRegistry injects a lookup reporting whether a sender name is
// a registered provider. A hit short-circuits provider detection. The
// default lookup always reports false.
func WithProviderRegistry(fn func(name string) bool) Option {
	return func(e *Engine) { e.isRegisteredProvider = fn }
}

// WithTypePredictor injects an optional statistical transaction-type
// classifier. Any failure of the predictor falls back to the rule engine.
func WithTypePredictor(p TypePredictor) Option {
	return func(e *Engine) { e.predictor = p }
}

// New builds an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		isRegisteredProvider: func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse extracts a best-effort transaction record from one SMS message.
// It always returns a complete record for non-empty text: fields that could
// not be extracted stay at their absent or sentinel values, the provider
// defaults to UNKNOWN and the type to unknown. Calling Parse twice with the
// same inputs yields identical output.
func (e *Engine) Parse(text, sender string) (*models.ParsedTransaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	ref, _ := resolveReference(text, sender)
	name, phone := extractCustomer(text)

	return &models.ParsedTransaction{
		ReferenceID:     ref,
		NetworkProvider: e.DetectProvider(sender, text),
		Type:            e.classifyType(text),
		Amount:          extractAmount(text),
		Balance:         extractBalance(text),
		TransactionFee:  extractFee(text),
		CustomerPhone:   phone,
		CustomerName:    name,
		TransactionDate: ParseDate(text),
		RawText:         text,
		Sender:          sender,
	}, nil
}
