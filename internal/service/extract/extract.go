// Package extract recovers customer contact fields from a chat transcript
// with independent pattern matchers.
package extract

import (
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transcript is the input every extractor sees: the turns in order and their
// contents joined with a single space.
type Transcript struct {
	Turns []core.Message
	Text  string
}

func NewTranscript(turns []core.Message) Transcript {
	contents := make([]string, len(turns))
	for i, t := range turns {
		contents[i] = t.Content
	}
	return Transcript{
		Turns: turns,
		Text:  strings.Join(contents, " "),
	}
}

// FieldExtractor returns the best value for one field, or false when nothing matched.
type FieldExtractor interface {
	Extract(t Transcript) (string, bool)
}

type binding struct {
	extractor FieldExtractor
	assign    func(*core.CustomerData, string)
}

// Coordinator runs each extractor once per call and merges the results.
// It holds no state between calls.
type Coordinator struct {
	bindings []binding
}

func New(email, name, location, phone FieldExtractor) *Coordinator {
	return &Coordinator{
		bindings: []binding{
			{email, func(d *core.CustomerData, v string) { d.Email = v }},
			{name, func(d *core.CustomerData, v string) { d.Name = v }},
			{location, func(d *core.CustomerData, v string) { d.Location = v }},
			{phone, func(d *core.CustomerData, v string) { d.WhatsApp = v }},
		},
	}
}

func Default() *Coordinator {
	return New(Email{}, Name{}, Location{}, Phone{})
}

func (c *Coordinator) Extract(turns []core.Message) core.CustomerData {
	transcript := NewTranscript(turns)

	var data core.CustomerData
	for _, b := range c.bindings {
		if b.extractor == nil {
			continue
		}
		if v, ok := b.extractor.Extract(transcript); ok {
			b.assign(&data, v)
		}
	}
	return data
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
// Casers keep state, so a new one is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
