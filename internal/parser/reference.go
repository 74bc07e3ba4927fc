package parser

import (
	"strings"

	"github.com/pesatrack/sms-parser/internal/models"
)

// resolveReference walks the provider-specific reference pattern lists in
// priority order and returns the first reference id found plus the provider
// implied by the matching list. When nothing matches, the reference is empty
// and the provider guess falls back to the sender (or UNKNOWN).
func resolveReference(text, sender string) (ref, provider string) {
	text = strings.TrimSpace(text)
	provider = sender
	if provider == "" {
		provider = models.ProviderUnknown
	}

	for _, p := range mpesaRefPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(m[1]), models.ProviderMPesa
		}
	}

	for _, p := range tigoRefPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			// Historical data carries both brandings of the same network.
			if strings.Contains(strings.ToLower(text), "tigo") {
				return m[1], models.ProviderTigoPesa
			}
			return m[1], models.ProviderYas
		}
	}

	for _, p := range airtelRefPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], models.ProviderAirtel
		}
	}

	for _, p := range haloRefPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], models.ProviderHaloPesa
		}
	}
	if m := haloDepositPattern.FindStringSubmatch(text); m != nil {
		return "HALODEP" + m[1], models.ProviderHaloPesa
	}

	for _, p := range genericRefPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], provider
		}
	}

	return "", provider
}

// DetectProvider identifies the mobile-money operator from the SMS sender
// and message body. The injected registered-provider lookup short-circuits
// everything else; after that, sender aliases and body keywords are checked
// before falling back to whatever the reference resolver inferred.
func (e *Engine) DetectProvider(sender, text string) string {
	s := strings.ToUpper(strings.TrimSpace(sender))
	lower := strings.ToLower(text)

	if s != "" && e.isRegisteredProvider(s) {
		return s
	}

	switch {
	case s == "MPESA" || s == "M-PESA" || strings.Contains(lower, "m-pesa"):
		return models.ProviderMPesa
	case s == "TIGOPESA" || s == "TIGO" || strings.Contains(lower, "tigo pesa sasa ni mixx by yas"):
		// TigoPesa rebranded to Mixx by Yas.
		return models.ProviderYas
	case strings.Contains(lower, "mixx by yas") || strings.Contains(strings.ToLower(s), "yas"):
		return models.ProviderYas
	case s == "AIRTELMONEY" || s == "AIRTEL" || strings.Contains(lower, "airtelmoney"):
		return models.ProviderAirtel
	case s == "HALOPESA" || s == "HALO" || strings.Contains(lower, "halopesa"):
		return models.ProviderHaloPesa
	}

	if _, guess := resolveReference(text, s); guess != models.ProviderUnknown {
		return guess
	}
	return models.ProviderUnknown
}
