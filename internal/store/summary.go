package store

import "fmt"

// ProviderTotal aggregates stored transactions for one provider.
type ProviderTotal struct {
	Provider string  `json:"provider"`
	Count    int     `json:"count"`
	Total    float64 `json:"total_amount"`
}

// TypeTotal aggregates stored transactions for one transaction type.
type TypeTotal struct {
	Type  string  `json:"type"`
	Count int     `json:"count"`
	Total float64 `json:"total_amount"`
}

// Summary is the dashboard aggregate over all stored transactions.
type Summary struct {
	TransactionCount int             `json:"transaction_count"`
	RejectedCount    int             `json:"rejected_count"`
	TotalAmount      float64         `json:"total_amount"`
	TotalFees        float64         `json:"total_fees"`
	ByProvider       []ProviderTotal `json:"by_provider"`
	ByType           []TypeTotal     `json:"by_type"`
}

// Summarize computes counts and amount totals per provider and per type.
// Amounts are summed in SQL; sub-cent drift is acceptable for a dashboard.
func (s *Store) Summarize() (*Summary, error) {
	sum := &Summary{}

	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CAST(amount AS REAL)), 0),
		       COALESCE(SUM(CAST(transaction_fee AS REAL)), 0)
		FROM transactions`,
	).Scan(&sum.TransactionCount, &sum.TotalAmount, &sum.TotalFees)
	if err != nil {
		return nil, fmt.Errorf("summarize transactions: %w", err)
	}

	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM rejected_sms`,
	).Scan(&sum.RejectedCount); err != nil {
		return nil, fmt.Errorf("summarize rejected sms: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT network_provider, COUNT(*), COALESCE(SUM(CAST(amount AS REAL)), 0)
		FROM transactions GROUP BY network_provider ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("summarize by provider: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pt ProviderTotal
		if err := rows.Scan(&pt.Provider, &pt.Count, &pt.Total); err != nil {
			return nil, fmt.Errorf("scan provider total: %w", err)
		}
		sum.ByProvider = append(sum.ByProvider, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	typeRows, err := s.db.Query(`
		SELECT type, COUNT(*), COALESCE(SUM(CAST(amount AS REAL)), 0)
		FROM transactions GROUP BY type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("summarize by type: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var tt TypeTotal
		if err := typeRows.Scan(&tt.Type, &tt.Count, &tt.Total); err != nil {
			return nil, fmt.Errorf("scan type total: %w", err)
		}
		sum.ByType = append(sum.ByType, tt)
	}
	return sum, typeRows.Err()
}
