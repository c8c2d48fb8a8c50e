package flyer

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/conv"
)

const placeholderPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s Product Flyer</title>
</head>
<body>
%s
</body>
</html>
`

// WritePlaceholder renders a one-page HTML flyer next to where the PDF should be
// and returns its path. An existing placeholder is reused.
func WritePlaceholder(dir string, product core.Product) (string, error) {
	name := strings.TrimSuffix(product.FlyerFile, filepath.Ext(product.FlyerFile)) + ".html"
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	md := fmt.Sprintf("# %s\n\n%s\n\n*Contact us to learn more.*\n", product.ID, product.Description)
	page := fmt.Sprintf(placeholderPage, html.EscapeString(string(product.ID)), conv.MarkdownToEmailHTML([]byte(md)))

	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write placeholder flyer: %w", err)
	}
	return path, nil
}
