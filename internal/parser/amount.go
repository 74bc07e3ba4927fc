package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// findDecimal walks an ordered pattern list over the lowercased text and
// returns the first captured group that parses as a decimal. A capture that
// fails to parse does not abort the walk; extraction is best-effort and the
// next pattern gets its chance.
func findDecimal(text string, patterns []*regexp.Regexp) *decimal.Decimal {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		return &d
	}
	return nil
}

func extractAmount(text string) *decimal.Decimal {
	return findDecimal(text, amountPatterns)
}

func extractBalance(text string) *decimal.Decimal {
	return findDecimal(text, balancePatterns)
}

func extractFee(text string) *decimal.Decimal {
	return findDecimal(text, feePatterns)
}
