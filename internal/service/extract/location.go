package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Checked in this order within each turn.
var locationKeywords = []string{"from", "location", "based in", "in"}

// Location takes the first token after a location keyword. Turns are scanned
// in order and the first accepted token wins.
type Location struct{}

func (Location) Extract(t Transcript) (string, bool) {
	for _, turn := range t.Turns {
		content := strings.ToLower(turn.Content)
		for _, keyword := range locationKeywords {
			_, after, found := strings.Cut(content, keyword)
			if !found {
				continue
			}
			if token := firstToken(after); utf8.RuneCountInString(token) > 1 {
				return titleCase(token), true
			}
		}
	}
	return "", false
}

// firstToken trims s and cuts it at the first '.', ',' or whitespace.
func firstToken(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexFunc(s, func(r rune) bool {
		return r == '.' || r == ',' || unicode.IsSpace(r)
	}); i >= 0 {
		s = s[:i]
	}
	return s
}
