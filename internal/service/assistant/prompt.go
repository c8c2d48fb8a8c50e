package assistant

import (
	"fmt"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
)

const promptIntro = `You are an AI Product Assistant for an AI software company. Your goal is to greet the user, understand their business needs, collect their contact information (Name, Location, Email, WhatsApp), suggest a relevant product from the list below, and then ask if they want a product flyer.`

// SystemPrompt renders the intake script with the catalog's products.
func SystemPrompt(catalog *core.Catalog) string {
	products := catalog.Products()

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = string(p.ID)
	}

	var b strings.Builder
	b.WriteString(promptIntro)
	b.WriteString("\n\nAvailable Products:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: %s\n", p.ID, p.Description)
	}

	b.WriteString("\nConversation Flow:\n")
	steps := []string{
		"Greet the user warmly.",
		"Ask for their business requirement.",
		"Once they provide their requirement, ask for their Name.",
		"Then ask for their Location.",
		"Then ask for their Email.",
		"Then ask for their WhatsApp number.",
		fmt.Sprintf("Ask which product they are interested in (%s).", strings.Join(ids, " or ")),
		"Ask if they want the product flyer sent to their Email or WhatsApp.",
		"If they agree, confirm the delivery method.",
		"Be conversational and friendly throughout.",
	}
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	return b.String()
}
