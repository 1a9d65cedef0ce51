package agent

// TruncateRunes caps s at n runes. Caps are counted in runes so multi-byte
// text is never cut mid-character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
