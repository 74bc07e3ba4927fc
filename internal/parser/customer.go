package parser

import (
	"strings"
	"unicode"

	"github.com/pesatrack/sms-parser/internal/models"
)

// Filler words that survive the regex capture but are never part of a name.
var nameStoplist = map[string]bool{
	"TSH":    true,
	"KWA":    true,
	"KUTOKA": true,
	"SALIO":  true,
	"WAKATI": true,
}

var phoneSeparators = strings.NewReplacer(",", " ", ".", " ", "-", " ")

// extractCustomer pulls the counterparty name and phone from the message.
// The name defaults to the UNKNOWN sentinel, the phone to empty.
func extractCustomer(text string) (name, phone string) {
	return extractName(text), extractPhone(text)
}

// extractPhone looks for Tanzanian MSISDN shapes over text with punctuation
// flattened to spaces so numbers embedded between separators still match.
func extractPhone(text string) string {
	flat := phoneSeparators.Replace(text)
	for _, p := range phonePatterns {
		if m := p.FindStringSubmatch(flat); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractName tries the context-keyword patterns before the generic
// capitalized-run fallback. Within one pattern the longest candidate wins:
// longer runs are more likely full names than stray keyword hits. A
// candidate that cleans down to fewer than four characters falls through to
// the next pattern.
func extractName(text string) string {
	for _, p := range namePatterns {
		matches := p.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		best := ""
		for _, m := range matches {
			if len(m[1]) > len(best) {
				best = m[1]
			}
		}
		if clean := cleanName(best); clean != "" {
			return clean
		}
	}
	return models.UnknownName
}

// cleanName keeps alphabetic words longer than one character, drops
// stoplist fillers, and rejects results shorter than four characters.
func cleanName(raw string) string {
	var words []string
	for _, w := range strings.Fields(raw) {
		if len(w) <= 1 || !isAlpha(w) {
			continue
		}
		if nameStoplist[strings.ToUpper(w)] {
			continue
		}
		words = append(words, w)
	}
	clean := strings.Join(words, " ")
	if len(clean) <= 3 {
		return ""
	}
	return strings.ToUpper(clean)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
