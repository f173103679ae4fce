package validators

import "strings"

// NormalizePhone reduces a phone number to its digits, keeping a leading
// "+". Users type numbers every which way ("0412-123.45.67",
// "+58 412 1234567") and the WhatsApp sender needs them clean.
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	plus := strings.HasPrefix(raw, "+")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	n := digits.Len()
	if n < 7 || n > 15 {
		return "", false
	}

	if plus {
		return "+" + digits.String(), true
	}
	return digits.String(), true
}
