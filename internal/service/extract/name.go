package extract

import (
	"regexp"
	"strings"
)

// Tried in order; the first pattern that matches anywhere wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is\s+([a-z]+)`),
	regexp.MustCompile(`name is\s+([a-z]+)`),
	regexp.MustCompile(`i'm\s+([a-z]+)`),
	regexp.MustCompile(`im\s+([a-z]+)`),
	regexp.MustCompile(`this is\s+([a-z]+)`),
}

// Name captures a single alphabetic token after a self-introduction phrase.
type Name struct{}

func (Name) Extract(t Transcript) (string, bool) {
	lower := strings.ToLower(t.Text)
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			return titleCase(m[1]), true
		}
	}
	return "", false
}
