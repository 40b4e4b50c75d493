package fulfillment

import "regexp"

// Invoice numbers are 13-digit runs bounded by word boundaries. When a body
// contains several, the leftmost wins; this mirrors the upstream payment
// provider's format and is a placeholder policy, not a validated business rule.
var invoicePattern = regexp.MustCompile(`\b\d{13}\b`)

// ExtractInvoiceNumber pulls the invoice number out of a payment email body.
// It reports false when the body contains no 13-digit run.
func ExtractInvoiceNumber(text string) (string, bool) {
	m := invoicePattern.FindString(text)
	return m, m != ""
}
