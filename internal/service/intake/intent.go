package intake

import (
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
)

// Substring matches, so "yesterday" and "emails" count too.
var deliveryKeywords = []string{"yes", "sure", "send", "email", "flyer"}

func wantsDelivery(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range deliveryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// requestedProduct returns the product named in the earliest history turn that names one.
func requestedProduct(catalog *core.Catalog, history []core.Message) (core.Product, bool) {
	for _, turn := range history {
		if p, ok := catalog.FirstMention(turn.Content); ok {
			return p, true
		}
	}
	return core.Product{}, false
}
