package gate

import "strings"

// SplitPair splits a currency pair like "BTC_USDT" into its base and
// quote assets. ok is false unless the pair is exactly two non-empty
// assets joined by PairSeparator.
func SplitPair(pair string) (from, to string, ok bool) {
	parts := strings.Split(pair, PairSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ValidPair reports whether pair has the BASE_QUOTE form.
func ValidPair(pair string) bool {
	_, _, ok := SplitPair(pair)
	return ok
}
