package extract

import "regexp"

var emailRE = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Email returns the first address in document order, case preserved.
type Email struct{}

func (Email) Extract(t Transcript) (string, bool) {
	m := emailRE.FindString(t.Text)
	return m, m != ""
}
