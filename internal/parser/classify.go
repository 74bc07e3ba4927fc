package parser

import (
	"strings"

	"github.com/pesatrack/sms-parser/internal/models"
)

// TypePredictor is the optional statistical transaction-type classifier. A
// loaded model is expected to be immutable after load (or internally safe
// for concurrent inference); Predict errors and panics are absorbed by the
// engine, which falls back to the rule engine.
type TypePredictor interface {
	Predict(text string) (string, error)
}

// Keyword groups evaluated in fixed precedence. Declined and fee-only
// notices share vocabulary with real transactions, so they must be checked
// before the positive categories.
var (
	insufficientKeywords = []string{
		"hakitoshi", "insufficient", "haukukamilika", "declined",
		"salio halitoshi", "huduma haikufanikiwa",
	}
	feeNoticeKeywords = []string{
		"ada ya huduma", "kamisheni pamoja na kodi", "lengo lako",
		"zawadi", "punguzo la tozo", "imekatwa",
	}
	// A message carrying any of these is a real transaction, not a fee notice.
	feeExclusionKeywords = []string{"umepokea", "umelipa", "umetuma"}

	receivedKeywords   = []string{"umepokea", "received", "salio lako jipya ni tsh", "umeongeza salio"}
	paymentKeywords    = []string{"umelipa", "umelipia", "malipo yamekamilika"}
	transferKeywords   = []string{"imehamishiwa", "umetuma", "zoezi la kuhamisha", "imeamishiwa"}
	withdrawalKeywords = []string{"umetoa", "toa tsh", "withdrawal", "kuchukua"}
	depositKeywords    = []string{"umeweka", "umeongeza salio", "deposit", "kuweka"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ClassifyType runs the deterministic keyword rule engine.
func ClassifyType(text string) string {
	lower := strings.ToLower(text)

	if containsAny(lower, insufficientKeywords) {
		return models.TypeInsufficientFunds
	}
	if containsAny(lower, feeNoticeKeywords) && !containsAny(lower, feeExclusionKeywords) {
		return models.TypeFeeNotice
	}
	if containsAny(lower, receivedKeywords) {
		if strings.Contains(lower, "umepokea") {
			return models.TypeReceived
		}
		return models.TypeDeposit
	}
	if containsAny(lower, paymentKeywords) {
		return models.TypePayment
	}
	if containsAny(lower, transferKeywords) {
		return models.TypeTransfer
	}
	if containsAny(lower, withdrawalKeywords) {
		return models.TypeWithdrawal
	}
	if containsAny(lower, depositKeywords) {
		return models.TypeDeposit
	}
	return models.TypeUnknown
}

// classifyType prefers the injected predictor and falls back silently to
// the rule engine on any failure.
func (e *Engine) classifyType(text string) string {
	if e.predictor != nil {
		if label, ok := predictSafely(e.predictor, text); ok {
			return label
		}
	}
	return ClassifyType(text)
}

// predictSafely shields the engine from a misbehaving model: errors, empty
// predictions and panics all read as "no prediction".
func predictSafely(p TypePredictor, text string) (label string, ok bool) {
	defer func() {
		if recover() != nil {
			label, ok = "", false
		}
	}()

	label, err := p.Predict(text)
	if err != nil || label == "" {
		return "", false
	}
	return label, true
}
