package parser

import "regexp"

// Ordered pattern tables for every extracted field. Order is load-bearing
// throughout this file: provider-specific patterns run before generic
// fallbacks and the first match wins, so a generic pattern must never be
// able to hijack a message a provider-specific pattern would handle.

// num captures a monetary value with optional thousands separators and up
// to two decimal places.
const num = `([\d,]+(?:\.\d{2})?)`

// M-Pesa reference shapes. A hit on any of these forces provider M-PESA.
var mpesaRefPatterns = []*regexp.Regexp{
	// Standard M-Pesa transaction code, e.g. CCC3H3KXJZV
	regexp.MustCompile(`(?i)\b([A-Z]{2,3}\d{1,2}[A-Z]\d[A-Z0-9]{6,8})\b`),
	regexp.MustCompile(`(?i)\b(C[A-Z0-9]{8,12})\b`),
	regexp.MustCompile(`(?i)(?:Reference|Ref|TxnID|Transaction ID)[\s:]*([A-Z0-9]{8,15})`),
}

// TigoPesa / Mixx by Yas reference shapes (Swahili "Kumbukumbu" plus digits).
var tigoRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Kumbukumbu\s+No[:.]?\s*(\d{10,15})`),
	regexp.MustCompile(`(?i)Kumbukumbu\s+namba[:\s]*(\d{10,15})`),
	regexp.MustCompile(`(?i)TxnID\s*[:\-]?\s*(\d{6,15})`),
}

// AirtelMoney reference shapes: dotted transaction ids or long alphanumerics.
var airtelRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:TID|Transaction ID|TXN Id|Muamala No)[:\s]*([A-Z]{2}\d{6}\.\d{4}\.[A-Z0-9]{6,8})`),
	regexp.MustCompile(`(?i)(?:TID|Transaction ID)[:\s]*([A-Z0-9]{10,20})`),
	regexp.MustCompile(`(?i)Muamala\s+No[:\s]*([A-Z0-9]{10,20})`),
}

// HaloPesa reference shapes.
var haloRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Utambulisho\s+wa\s+muamala[:\s]*(\d{10,15})`),
}

// Deposit confirmations carry a literal HALODEP prefix that stays part of
// the reference id.
var haloDepositPattern = regexp.MustCompile(`(?i)HALODEP(\d+)`)

// Generic fallbacks with no provider inference. These must stay last.
var genericRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Reference|Ref)[:\s]*([A-Z0-9]{6,15})`),
	regexp.MustCompile(`(?i)(?:Transaction|Txn)[:\s]*([A-Z0-9]{6,15})`),
}

// Amount patterns are matched against lowercased text: Swahili transaction
// verbs paired with the "tsh" currency marker, most specific first.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:kiasi|amount)[\s:]*tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:umepokea|received)\s*(?:pesa\s*)?tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:umelipa|paid)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:umetuma|sent)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:umetoa|withdraw)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:umeweka|deposit)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`umeongeza\s*salio\s*la\s*tsh[\s:.]*` + num),

	// M-Pesa phrasing: amount before the counterparty
	regexp.MustCompile(`tsh[\s:.]*` + num + `\s*(?:kutoka|kwenda|kwa)`),
	regexp.MustCompile(`tsh[\s:.]*` + num + `\s*(?:imetumwa|imehamishiwa)`),

	// AirtelMoney phrasing
	regexp.MustCompile(`(?:umepokea|umetuma|umetoa|umelipa)\s*tsh\s*` + num),
	// HaloPesa phrasing
	regexp.MustCompile(`(?:umelipia|umepokea|umetoa)\s*tsh\s*` + num),
	// Yas/TigoPesa phrasing
	regexp.MustCompile(`kiasi\s*tsh\s*` + num),
	regexp.MustCompile(`(?:kutoka|kwenda)\s*kwa.*?\s*tsh\s*` + num),

	// Fee-shaped amounts (fee-only notices still carry an amount)
	regexp.MustCompile(`(?:ada|kamisheni|makato)\s*(?:ya\s*)?tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:mrejaa|fee)\s*tsh[\s:.]*` + num),

	// Bare currency marker, last resort
	regexp.MustCompile(`tsh[\s:.]*` + num),
}

// Balance patterns ("salio" = balance), provider-specific wording first.
var balancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`salio\s+lako\s+(?:jipya\s+)?(?:la\s+)?(?:m-pesa\s+)?ni\s+tsh[\s:.]*` + num),
	regexp.MustCompile(`salio\s+(?:jipya\s+)?ni\s+tsh[\s:.]*` + num),
	regexp.MustCompile(`salio\s+(?:la\s+)?(?:akaunti\s+ya\s+)?(?:mtaji|kazi)\s+ni\s+tsh[\s:.]*` + num),
	regexp.MustCompile(`salio\s+lako\s+(?:jipya\s+)?(?:la\s+)?halopesa\s+ni\s+tsh[\s:.]*` + num),
	regexp.MustCompile(`salio\s+tsh[\s:.]*` + num),
	regexp.MustCompile(`salio[\s\w]*tsh[\s:.]*` + num),
}

// Fee patterns: commissions, deductions, levies and service charges.
var feePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:kamisheni|commission)\s*(?:pamoja\s+na\s+kodi\s*)?tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:ada|fee)\s*(?:ya\s*)?tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:makato|deduction)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:mrejaa|charges)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`(?:tozo|tax)\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`jumla\s+ya\s+makato\s+tsh[\s:.]*` + num),
	regexp.MustCompile(`ada\s+ya\s+huduma\s*tsh[\s:.]*` + num),
	regexp.MustCompile(`ada\s+ya\s+huduma.*?imekatwa\s*tsh[\s:.]*` + num),
}

// Tanzanian MSISDN shapes, most specific first. The bare-digit fallback
// must stay last or it captures a substring of a fuller international
// number (or a digits-only reference id).
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(255\d{9})\b`),
	regexp.MustCompile(`\b(0[67]\d{8})\b`),
	regexp.MustCompile(`\b([67]\d{8})\b`),
	regexp.MustCompile(`\b(\d{8,9})\b`),
}

// Name patterns: context keywords ("kutoka"/"from", "kwenda"/"kwa",
// trailing "wakati", agent "Wakala:") before the generic capitalized-run
// fallback.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:kutoka|from)\s*(?:\d+\s*-\s*)?([A-Z][A-Z\s]+?)(?:\.|,|\s+\d|\s+wakati|\s+salio)`),
	regexp.MustCompile(`(?i)(?:kwenda|kwa)\s*(?:\d+\s*-\s*)?([A-Z][A-Z\s]+?)(?:\.|,|\s+\d|\s+salio|\s+wakati)`),
	regexp.MustCompile(`(?i)([A-Z][A-Z\s]+?)\s*,?\s*wakati`),
	regexp.MustCompile(`(?i)Wakala:\s*([A-Z][A-Z\s]+?)(?:\.|,|\s+\d|\s+salio)`),
	regexp.MustCompile(`(?i)([A-Z]{2,}(?:\s+[A-Z]{2,})*)`),
}

// Date grammars tried in order. The first two capture a combined date+time
// token; the rest capture date and time separately.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4}\s+\d{1,2}:\d{2}(?::\d{2})?)`),
	regexp.MustCompile(`(\d{4}/\d{1,2}/\d{1,2}\s+\d{1,2}:\d{2}:\d{2})`),
	regexp.MustCompile(`(?i)tarehe\s+(\d{1,2}/\d{1,2}/\d{2,4})\s+(?:saa\s+)?(\d{1,2}:\d{2})`),
	regexp.MustCompile(`(?i)mnamo\s+(\d{1,2}/\d{1,2}/\d{2,4})[,\s]+(\d{1,2}:\d{2})`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s+(\d{1,2}:\d{2})`),
}
