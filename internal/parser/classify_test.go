package parser

import (
	"errors"
	"testing"

	"github.com/pesatrack/sms-parser/internal/models"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"received", "Umepokea TSh10,000 kutoka JOHN DOE", models.TypeReceived},
		{"payment", "Umelipa TSh5,000 kwa DUKA LA DAWA", models.TypePayment},
		{"payment via umelipia", "Umelipia TSh2,000 LUKU", models.TypePayment},
		{"transfer", "Umetuma TSh3,000 kwenda JANE", models.TypeTransfer},
		{"transfer via imehamishiwa", "TSh3,000 imehamishiwa kwenda akaunti yako", models.TypeTransfer},
		{"withdrawal", "Umetoa TSh20,000 Wakala: MAMA LISHE", models.TypeWithdrawal},
		{"deposit", "Umeweka TSh50,000 kwenye akaunti yako", models.TypeDeposit},
		{"deposit via umeongeza salio", "Umeongeza salio la TSh10,000", models.TypeDeposit},
		{"fee notice", "Ada ya huduma TSh150 imekatwa kwenye akaunti yako", models.TypeFeeNotice},
		{"insufficient funds", "Salio halitoshi kukamilisha muamala huu", models.TypeInsufficientFunds},
		{"unknown", "Karibu kwenye huduma zetu", models.TypeUnknown},

		// Precedence: a declined message quoting a transaction verb is
		// still a failure, not a transfer.
		{"insufficient beats transfer", "Muamala haukukamilika: umetuma TSh5,000", models.TypeInsufficientFunds},
		// A fee phrase on a real transaction does not demote it to a
		// fee notice.
		{"fee phrase with umepokea stays received", "Umepokea TSh10,000. Ada ya huduma TSh100", models.TypeReceived},
		{"fee phrase with umelipa stays payment", "Umelipa TSh5,000. Kamisheni pamoja na kodi TSh120", models.TypePayment},
		// "umepokea" disambiguates received from the shared salio keyword.
		{"received beats deposit on umepokea", "Umepokea TSh1,000. Umeongeza salio", models.TypeReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyType(tt.text); got != tt.want {
				t.Errorf("ClassifyType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

type stubPredictor struct {
	label string
	err   error
	panic bool
}

func (p stubPredictor) Predict(string) (string, error) {
	if p.panic {
		panic("model not loaded")
	}
	return p.label, p.err
}

func TestClassifyTypeWithPredictor(t *testing.T) {
	const text = "Umepokea TSh10,000 kutoka JOHN DOE"

	tests := []struct {
		name      string
		predictor TypePredictor
		want      string
	}{
		{"prediction wins over rules", stubPredictor{label: models.TypePayment}, models.TypePayment},
		{"error falls back to rules", stubPredictor{err: errors.New("inference failed")}, models.TypeReceived},
		{"empty label falls back to rules", stubPredictor{}, models.TypeReceived},
		{"panic falls back to rules", stubPredictor{panic: true}, models.TypeReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithTypePredictor(tt.predictor))
			if got := e.classifyType(text); got != tt.want {
				t.Errorf("classifyType(%q) = %q, want %q", text, got, tt.want)
			}
		})
	}
}
