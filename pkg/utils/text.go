package utils

import "unicode/utf8"

// PlanContinuationHint is appended when a generated plan exceeds the
// storage cap, pointing the farmer at the follow-up thread for the rest.
const PlanContinuationHint = "\n\nHave more questions about this plan? Use the follow-up section to get detailed answers about any specific aspect of your crop plan."

// CapText enforces a hard character budget: text longer than limit is cut
// back and the hint appended, so the result never exceeds limit bytes. A
// limit too small to fit the hint hard-cuts the text instead. The cut
// backs off to a rune boundary, so capped output may be slightly shorter
// than limit for multi-byte scripts.
func CapText(text string, limit int, hint string) string {
	if len(text) <= limit {
		return text
	}
	if limit <= len(hint) {
		return cutAtRuneStart(text, limit)
	}
	return cutAtRuneStart(text, limit-len(hint)) + hint
}

// TruncateWithEllipsis shortens text to at most max bytes, marking the cut
// with "...". Used for secondary fields (disease name, remedy) where an
// exact budget matters less than never tripping the storage limit.
func TruncateWithEllipsis(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max - 3
	if cut < 0 {
		cut = 0
	}
	return cutAtRuneStart(text, cut) + "..."
}

func cutAtRuneStart(text string, n int) string {
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
