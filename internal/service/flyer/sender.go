// Package flyer delivers product flyers to visitors by email.
package flyer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/conv"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
)

const bodyTemplate = `Dear Valued Customer,

Thank you for your interest in our %s product. Please find the product flyer attached to this email.

If you have any questions, please don't hesitate to reply to this email.

Best regards,
AI Product Assistant`

type Sender struct {
	mailer    core.Mailer
	catalog   *core.Catalog
	flyersDir string
}

func NewSender(mailer core.Mailer, catalog *core.Catalog, flyersDir string) *Sender {
	return &Sender{
		mailer:    mailer,
		catalog:   catalog,
		flyersDir: flyersDir,
	}
}

// SendFlyer reports true only when the mail was handed to the server.
func (s *Sender) SendFlyer(ctx context.Context, email string, productID core.ProductID) bool {
	logger := log.FromCtx(ctx).With().
		Str("email", email).
		Str("product", string(productID)).
		Logger()

	if email == "" || productID == "" {
		logger.Error().Msg("missing recipient email or product name")
		return false
	}

	product, ok := s.catalog.Lookup(productID)
	if !ok {
		logger.Error().Msg("invalid product name")
		return false
	}

	attachment, err := s.flyerPath(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("failed to prepare flyer")
		return false
	}

	if err := s.mailer.Send(ctx, ComposeMail(email, product, attachment)); err != nil {
		logger.Error().Err(err).Msg("failed to send product flyer email")
		return false
	}

	logger.Info().Str("attachment", filepath.Base(attachment)).Msg("product flyer email sent")
	return true
}

// ComposeMail builds the flyer email with a plain body, an HTML alternative and the attachment.
func ComposeMail(to string, product core.Product, attachment string) core.Mail {
	body := fmt.Sprintf(bodyTemplate, product.ID)

	m := core.Mail{
		To:      to,
		Subject: fmt.Sprintf("Your Requested %s Product Flyer", product.ID),
		Text:    body,
		HTML:    conv.MarkdownToEmailHTML([]byte(body)),
	}
	if attachment != "" {
		m.Attachments = []string{attachment}
	}
	return m
}

// flyerPath returns the product's flyer, writing a placeholder when the file is missing.
func (s *Sender) flyerPath(ctx context.Context, product core.Product) (string, error) {
	if err := os.MkdirAll(s.flyersDir, 0o755); err != nil {
		return "", fmt.Errorf("create flyers dir: %w", err)
	}

	path := filepath.Join(s.flyersDir, product.FlyerFile)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("stat flyer: %w", err)
	}

	log.FromCtx(ctx).Warn().
		Str("product", string(product.ID)).
		Str("path", path).
		Msg("flyer missing, using placeholder")
	return WritePlaceholder(s.flyersDir, product)
}
