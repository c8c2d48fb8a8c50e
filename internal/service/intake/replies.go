package intake

import (
	"fmt"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
)

const (
	deliveryFailedReply = "I apologize, but there was an issue sending the flyer. Please try again or provide a different email address."
	askEmailReply       = "I don't have your email address yet. Could you please provide it?"
)

func deliveredReply(product core.ProductID, email string) string {
	return fmt.Sprintf("Great! I've sent the %s flyer to your email address (%s). Please check your inbox. Is there anything else I can help you with?", product, email)
}

func askProductReply(catalog *core.Catalog) string {
	products := catalog.Products()
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = string(p.ID)
	}
	return fmt.Sprintf("Which product flyer would you like? (%s)", strings.Join(ids, " or "))
}
