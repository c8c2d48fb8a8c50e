package extract

import (
	"testing"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/stretchr/testify/assert"
)

func userTurns(contents ...string) []core.Message {
	turns := make([]core.Message, len(contents))
	for i, c := range contents {
		turns[i] = core.Message{Role: core.RoleUser, Content: c}
	}
	return turns
}

func TestEmail_Extract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"case preserved", "Contact me at John.Doe@Example.COM please", "John.Doe@Example.COM", true},
		{"first in document order", "first@one.io then second@two.io", "first@one.io", true},
		{"plus and percent", "use a+b%c@mail.example.org", "a+b%c@mail.example.org", true},
		{"single letter tld rejected", "a@b.c", "", false},
		{"none", "no address here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Email{}.Extract(NewTranscript(userTurns(tt.text)))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestName_Extract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"my name is", "my name is alice", "Alice", true},
		{"mixed case input", "My Name Is ALICE", "Alice", true},
		{"first token only", "My name is Alice Smith", "Alice", true},
		{"priority over later pattern", "this is bob. my name is alice", "Alice", true},
		{"i'm", "Hi, I'm Carol", "Carol", true},
		{"this is", "Hello, this is Dave speaking", "Dave", true},
		{"none", "hello there", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Name{}.Extract(NewTranscript(userTurns(tt.text)))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocation_Extract(t *testing.T) {
	tests := []struct {
		name  string
		turns []string
		want  string
		found bool
	}{
		{"based in", []string{"I'm based in Austin, TX"}, "Austin", true},
		{"from stops at whitespace", []string{"I am from new york."}, "New", true},
		{"token after first occurrence", []string{"in berlin"}, "Berlin", true},
		{"first accepted turn wins", []string{"I'm from Berlin", "based in Paris"}, "Berlin", true},
		{"single character rejected", []string{"from x", "located in Lisbon"}, "Lisbon", true},
		{"keyword priority within a turn", []string{"based in Rome from Milan"}, "Milan", true},
		{"none", []string{"hello", "thanks"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Location{}.Extract(NewTranscript(userTurns(tt.turns...)))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhone_Extract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"formatted international", "+1 (555) 123-4567", "15551234567", true},
		{"plain digits", "My number is 9876543210", "9876543210", true},
		{"short numbers skipped", "order 12345 and phone 98765 43210", "9876543210", true},
		{"too short", "call 555-1234", "", false},
		{"no digits", "no phone", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Phone{}.Extract(NewTranscript(userTurns(tt.text)))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinator_Extract(t *testing.T) {
	turns := []core.Message{
		{Role: core.RoleUser, Content: "Hi, my name is alice"},
		{Role: core.RoleAssistant, Content: "Nice to meet you Alice! Where are you located?"},
		{Role: core.RoleUser, Content: "I'm based in Austin, TX"},
		{Role: core.RoleUser, Content: "my email is alice@example.com and whatsapp +1 (555) 123-4567"},
	}

	c := Default()
	got := c.Extract(turns)

	assert.Equal(t, core.CustomerData{
		Name:     "Alice",
		Location: "Austin",
		Email:    "alice@example.com",
		WhatsApp: "15551234567",
	}, got)

	assert.Equal(t, got, c.Extract(turns), "extraction must be idempotent")
}

func TestCoordinator_NoMatches(t *testing.T) {
	got := Default().Extract(userTurns("hello", "thanks"))
	assert.True(t, got.IsEmpty())

	assert.True(t, Default().Extract(nil).IsEmpty())
}

type fixedExtractor string

func (f fixedExtractor) Extract(Transcript) (string, bool) {
	return string(f), f != ""
}

func TestCoordinator_ReplaceableExtractors(t *testing.T) {
	c := New(Email{}, fixedExtractor("Zed"), nil, fixedExtractor(""))

	got := c.Extract(userTurns("my name is alice, from Oslo, bob@example.com"))

	assert.Equal(t, "Zed", got.Name)
	assert.Equal(t, "bob@example.com", got.Email)
	assert.Empty(t, got.Location)
	assert.Empty(t, got.WhatsApp)
}

func TestNewTranscript_JoinsWithSingleSpace(t *testing.T) {
	tr := NewTranscript(userTurns("a", "b", "c"))
	assert.Equal(t, "a b c", tr.Text)
	assert.Len(t, tr.Turns, 3)
}
