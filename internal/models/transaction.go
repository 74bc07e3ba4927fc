package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedTransaction is the structured record extracted from one mobile-money
// SMS notification. Every field is best-effort: an extractor that finds
// nothing leaves its field at the absent value instead of failing the parse.
// The record is immutable after construction.
type ParsedTransaction struct {
	ReferenceID     string           `json:"reference_id,omitempty"`
	NetworkProvider string           `json:"network_provider"`
	Type            string           `json:"transaction_type"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	TransactionFee  *decimal.Decimal `json:"transaction_fee,omitempty"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	CustomerName    string           `json:"customer_name"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	RawText         string           `json:"raw_text"`
	Sender          string           `json:"sender,omitempty"`
}

// Network providers seen in Tanzanian mobile-money SMS traffic. The set is
// open: DetectProvider may return a sender name outside this list, and new
// operators and aliases appear without a code change, so these are plain
// string values rather than a closed type.
const (
	ProviderMPesa    = "M-PESA"
	ProviderTigoPesa = "TIGOPESA"
	ProviderYas      = "YAS"
	ProviderAirtel   = "AIRTELMONEY"
	ProviderHaloPesa = "HALOPESA"
	ProviderUnknown  = "UNKNOWN"
)

// Transaction types produced by the classifier. Open set with an "unknown"
// fallback that downstream acceptance policy keys on.
const (
	TypeReceived          = "received"
	TypeDeposit           = "deposit"
	TypePayment           = "payment"
	TypeTransfer          = "transfer"
	TypeWithdrawal        = "withdrawal"
	TypeInsufficientFunds = "insufficient_funds"
	TypeFeeNotice         = "fee_notice"
	TypeUnknown           = "unknown"
)

// UnknownName is the sentinel used when no customer name could be extracted.
// It is a literal string rather than an absent value so downstream consumers
// never need nil checks on the name.
const UnknownName = "UNKNOWN"
