package extract

import (
	"regexp"
	"strings"
)

const minPhoneDigits = 10

var phoneRE = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)

// Phone returns the digits of the first phone-like match with at least ten digits.
type Phone struct{}

func (Phone) Extract(t Transcript) (string, bool) {
	for _, m := range phoneRE.FindAllString(t.Text, -1) {
		if digits := digitsOnly(m); len(digits) >= minPhoneDigits {
			return digits, true
		}
	}
	return "", false
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
