// Package store persists accepted transactions, rejected submissions and
// the provider registry in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/pesatrack/sms-parser/internal/models"
)

// ErrDuplicateTransaction is returned when a reference id has already been
// stored. Reference ids are best-effort extractions, but a repeated id is
// almost always the same SMS submitted twice.
var ErrDuplicateTransaction = errors.New("duplicate transaction reference")

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	reference_id TEXT UNIQUE,
	network_provider TEXT NOT NULL,
	type TEXT NOT NULL,
	amount TEXT,
	customer_phone TEXT NOT NULL DEFAULT 'UNKNOWN',
	customer_name TEXT NOT NULL DEFAULT 'UNKNOWN',
	balance TEXT,
	transaction_fee TEXT,
	date_transaction TIMESTAMP NOT NULL,
	raw_sms TEXT NOT NULL,
	sender TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS rejected_sms (
	id TEXT PRIMARY KEY,
	sender TEXT NOT NULL,
	message TEXT NOT NULL,
	reason TEXT NOT NULL,
	received_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS providers (
	name TEXT PRIMARY KEY,
	description TEXT,
	created_at TIMESTAMP NOT NULL
);
`

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// StoredTransaction is an accepted transaction row.
type StoredTransaction struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	models.ParsedTransaction
}

// RejectedSMS is a submission that failed the acceptance policy.
type RejectedSMS struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Message    string    `json:"message"`
	Reason     string    `json:"reason"`
	ReceivedAt time.Time `json:"received_at"`
}

// SaveTransaction inserts an accepted record and returns the row id. Absent
// phone/name become the UNKNOWN sentinel and an absent date falls back to
// fallbackDate, so stored rows are always complete.
func (s *Store) SaveTransaction(tx *models.ParsedTransaction, fallbackDate time.Time) (string, error) {
	id := uuid.NewString()

	phone := tx.CustomerPhone
	if phone == "" {
		phone = models.UnknownName
	}
	name := tx.CustomerName
	if name == "" {
		name = models.UnknownName
	}
	date := fallbackDate
	if tx.TransactionDate != nil {
		date = *tx.TransactionDate
	}

	_, err := s.db.Exec(`
		INSERT INTO transactions (
			id, reference_id, network_provider, type, amount,
			customer_phone, customer_name, balance, transaction_fee,
			date_transaction, raw_sms, sender, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		nullString(tx.ReferenceID),
		tx.NetworkProvider,
		tx.Type,
		nullDecimal(tx.Amount),
		phone,
		name,
		nullDecimal(tx.Balance),
		nullDecimal(tx.TransactionFee),
		date.UTC(),
		tx.RawText,
		nullString(tx.Sender),
		time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", ErrDuplicateTransaction
		}
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// SaveRejected records a submission that failed the acceptance policy.
func (s *Store) SaveRejected(sender, message, reason string) error {
	_, err := s.db.Exec(`
		INSERT INTO rejected_sms (id, sender, message, reason, received_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sender, message, reason, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert rejected sms: %w", err)
	}
	return nil
}

// AddProvider registers a provider name for sender-based detection.
func (s *Store) AddProvider(name, description string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO providers (name, description, created_at)
		VALUES (?, ?, ?)`,
		name, description, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// IsRegisteredProvider reports whether name is in the provider registry.
// Lookup is case-insensitive; errors read as "not registered" so detection
// degrades rather than fails.
func (s *Store) IsRegisteredProvider(name string) bool {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM providers WHERE name = ? COLLATE NOCASE`, name,
	).Scan(&one)
	return err == nil
}

// ListTransactions returns stored transactions, newest first, optionally
// filtered by provider. A limit of 0 means no limit.
func (s *Store) ListTransactions(provider string, limit int) ([]StoredTransaction, error) {
	query := `
		SELECT id, reference_id, network_provider, type, amount,
		       customer_phone, customer_name, balance, transaction_fee,
		       date_transaction, raw_sms, sender, created_at
		FROM transactions`
	var args []any
	if provider != "" {
		query += ` WHERE network_provider = ? COLLATE NOCASE`
		args = append(args, provider)
	}
	query += ` ORDER BY date_transaction DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []StoredTransaction
	for rows.Next() {
		var (
			txn       StoredTransaction
			ref, sndr sql.NullString
			amt, bal  decimal.NullDecimal
			fee       decimal.NullDecimal
			txnDate   time.Time
		)
		if err := rows.Scan(
			&txn.ID, &ref, &txn.NetworkProvider, &txn.Type, &amt,
			&txn.CustomerPhone, &txn.CustomerName, &bal, &fee,
			&txnDate, &txn.RawText, &sndr, &txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txn.ReferenceID = ref.String
		txn.Sender = sndr.String
		txn.TransactionDate = &txnDate
		if amt.Valid {
			txn.Amount = &amt.Decimal
		}
		if bal.Valid {
			txn.Balance = &bal.Decimal
		}
		if fee.Valid {
			txn.TransactionFee = &fee.Decimal
		}
		out = append(out, txn)
	}
	return out, rows.Err()
}

// ListRejected returns rejected submissions, newest first. A limit of 0
// means no limit.
func (s *Store) ListRejected(limit int) ([]RejectedSMS, error) {
	query := `
		SELECT id, sender, message, reason, received_at
		FROM rejected_sms ORDER BY received_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rejected sms: %w", err)
	}
	defer rows.Close()

	var out []RejectedSMS
	for rows.Next() {
		var r RejectedSMS
		if err := rows.Scan(&r.ID, &r.Sender, &r.Message, &r.Reason, &r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan rejected sms: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
