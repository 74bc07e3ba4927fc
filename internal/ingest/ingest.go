// Package ingest applies the submission policy: parse an incoming SMS,
// accept and persist it when both the provider and the transaction type
// were recognized, otherwise record a rejection with a reason.
package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pesatrack/sms-parser/internal/models"
	"github.com/pesatrack/sms-parser/internal/parser"
	"github.com/pesatrack/sms-parser/internal/store"
)

// RejectionReason is the human-readable reason stored with every rejected
// submission.
const RejectionReason = "unrecognized provider or transaction type"

// Result reports what happened to one submission.
type Result struct {
	Saved    bool                      `json:"saved"`
	Rejected bool                      `json:"rejected"`
	Error    string                    `json:"error,omitempty"`
	ID       string                    `json:"id,omitempty"`
	Parsed   *models.ParsedTransaction `json:"parsed"`
}

// Service wires the parse engine to the store.
type Service struct {
	engine *parser.Engine
	store  *store.Store
	log    zerolog.Logger
	now    func() time.Time
}

// New builds a submission service.
func New(engine *parser.Engine, st *store.Store, log zerolog.Logger) *Service {
	return &Service{
		engine: engine,
		store:  st,
		log:    log,
		now:    time.Now,
	}
}

var controlChars = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

// Handle flattens, parses and stores (or rejects) one SMS submission. It
// returns an error only when there is no text to process; storage problems
// are reported in the Result so the caller still sees the parsed record.
func (s *Service) Handle(text, sender string) (*Result, error) {
	flat := strings.TrimSpace(controlChars.Replace(text))

	parsed, err := s.engine.Parse(flat, sender)
	if err != nil {
		return nil, err
	}

	res := &Result{Parsed: parsed}

	if parsed.Type != models.TypeUnknown && parsed.NetworkProvider != models.ProviderUnknown {
		id, err := s.store.SaveTransaction(parsed, s.now().UTC())
		switch {
		case errors.Is(err, store.ErrDuplicateTransaction):
			res.Error = "duplicate transaction"
			s.log.Warn().
				Str("reference_id", parsed.ReferenceID).
				Str("provider", parsed.NetworkProvider).
				Msg("duplicate transaction submission")
		case err != nil:
			res.Error = err.Error()
			s.log.Error().Err(err).Msg("failed to store transaction")
		default:
			res.Saved = true
			res.ID = id
			s.log.Info().
				Str("id", id).
				Str("provider", parsed.NetworkProvider).
				Str("type", parsed.Type).
				Msg("transaction stored")
		}
		return res, nil
	}

	rejSender := parsed.CustomerPhone
	if rejSender == "" {
		rejSender = models.UnknownName
	}
	if err := s.store.SaveRejected(rejSender, flat, RejectionReason); err != nil {
		res.Error = err.Error()
		s.log.Error().Err(err).Msg("failed to store rejection")
		return res, nil
	}
	res.Rejected = true
	s.log.Info().
		Str("provider", parsed.NetworkProvider).
		Str("type", parsed.Type).
		Msg("sms rejected")
	return res, nil
}
