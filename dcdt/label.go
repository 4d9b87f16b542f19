package dcdt

import (
	"strings"
	"unicode"
)

// labelWindow is the scan window for label candidates, sized to the
// segment bodies seen in real files.
const labelWindow = 200

// FindLabel scans raw from start for a human-readable command label,
// e.g. "Deck A Play". It walks fixed windows, tries a UTF-16BE decode
// of each, strips NULs and non-printables, and accepts the first
// window containing a vocabulary keyword (case-insensitive).
//
// This is a heuristic, kept deliberately dumb: the byte layout after
// the identifier string was never conclusively worked out, and the
// first-match policy is a known source of occasional mismatch. Returns
// "" when nothing plausible turns up.
func FindLabel(raw []byte, start int, vocabulary []string) string {
	if start < 0 || start >= len(raw) {
		return ""
	}

	for pos := start; pos < len(raw); pos += labelWindow {
		end := pos + labelWindow
		if end > len(raw) {
			end = len(raw)
		}
		window := raw[pos:end]
		// UTF-16 units are 2 bytes; drop a trailing odd byte
		if len(window)%2 != 0 {
			window = window[:len(window)-1]
		}
		if len(window) == 0 {
			continue
		}

		text, ok := decodeUTF16BE(window)
		if !ok {
			continue
		}

		cleaned := stripUnprintable(text)
		if cleaned == "" {
			continue
		}
		if containsKeyword(cleaned, vocabulary) {
			return cleaned
		}
	}

	return ""
}

func stripUnprintable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == 0 || !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func containsKeyword(s string, vocabulary []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range vocabulary {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
