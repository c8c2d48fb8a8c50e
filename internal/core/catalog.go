package core

import (
	"regexp"
	"strings"
)

type ProductID string

const (
	ProductEmailResponsePrediction ProductID = "Email-Response-Prediction"
	ProductPPEDetection            ProductID = "PPE-Detection"
)

type Product struct {
	ID          ProductID
	Description string
	// Aliases are lower-case forms matched against conversation text.
	Aliases   []string
	FlyerFile string

	patterns []*regexp.Regexp
}

// Mentioned reports whether the text refers to the product by any alias.
func (p Product) Mentioned(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range p.patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	products []Product
}

func NewCatalog(products ...Product) *Catalog {
	c := &Catalog{products: make([]Product, 0, len(products))}
	for _, p := range products {
		p.patterns = make([]*regexp.Regexp, 0, len(p.Aliases))
		for _, alias := range p.Aliases {
			p.patterns = append(p.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(alias)+`\b`))
		}
		c.products = append(c.products, p)
	}
	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog(
		Product{
			ID:          ProductEmailResponsePrediction,
			Description: "An AI tool that predicts email responses and helps optimize email campaigns.",
			Aliases:     []string{"email-response-prediction"},
			FlyerFile:   "email_response_prediction.pdf",
		},
		Product{
			ID:          ProductPPEDetection,
			Description: "An advanced computer vision system for detecting proper use of Personal Protective Equipment in workplaces.",
			Aliases:     []string{"ppe-detection", "ppe"},
			FlyerFile:   "ppe_detection.pdf",
		},
	)
}

// Products returns the products in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Lookup(id ProductID) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Resolve accepts either a product id or an alias, case-insensitively.
func (c *Catalog) Resolve(name string) (Product, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.products {
		if strings.ToLower(string(p.ID)) == name {
			return p, true
		}
		for _, alias := range p.Aliases {
			if alias == name {
				return p, true
			}
		}
	}
	return Product{}, false
}

// FirstMention returns the first product mentioned in text, in catalog order.
func (c *Catalog) FirstMention(text string) (Product, bool) {
	for _, p := range c.products {
		if p.Mentioned(text) {
			return p, true
		}
	}
	return Product{}, false
}
