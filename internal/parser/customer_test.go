package parser

import (
	"testing"

	"github.com/pesatrack/sms-parser/internal/models"
)

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"international format", "kutoka 255712345678 - JOHN DOE", "255712345678"},
		{"local format with leading zero", "kwenda 0712345678 JANE", "0712345678"},
		{"bare nine digit", "kwa 712345678 wakati 10:30", "712345678"},
		{"international wins over embedded local", "simu 255712345678 au 0688111222", "255712345678"},
		{"number wrapped in punctuation", "kutoka,255712345678,JOHN", "255712345678"},
		{"no phone", "Umepokea TSh10,000 kutoka JOHN DOE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPhone(tt.text); got != tt.want {
				t.Errorf("extractPhone(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"kutoka context", "Umepokea TSh10,000 kutoka JOHN DOE. Salio lako", "JOHN DOE"},
		{"kutoka with msisdn prefix", "kutoka 255712345678 - JANE MDOE, Salio", "JANE MDOE"},
		{"kwenda context", "Umetuma TSh5,000 kwenda MARIA KIMARO. Kumbukumbu", "MARIA KIMARO"},
		{"wakala context", "Umetoa TSh20,000 Wakala: MAMA LISHE DUKA. Salio", "MAMA LISHE DUKA"},
		{"trailing wakati", "JUMA HAMISI, wakati 10:30", "JUMA HAMISI"},
		{"no name", "x1 y2 z3", models.UnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractName(tt.text); got != tt.want {
				t.Errorf("extractName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain name", "JOHN DOE", "JOHN DOE"},
		{"stoplist words dropped", "TSH JOHN DOE SALIO", "JOHN DOE"},
		{"single letters dropped", "J JOHN A DOE", "JOHN DOE"},
		{"digit words dropped", "JOHN 255712 DOE", "JOHN DOE"},
		{"too short after cleaning", "TSH ABC", ""},
		{"only fillers", "TSH KWA SALIO", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanName(tt.raw); got != tt.want {
				t.Errorf("cleanName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
