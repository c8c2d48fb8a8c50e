// Package intake runs one chat exchange: reply, extraction, delivery decision and persistence.
package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Replier interface {
	Reply(ctx context.Context, message string, history []core.Message) string
}

type Extractor interface {
	Extract(turns []core.Message) core.CustomerData
}

type Result struct {
	ExchangeID string
	Response   string
	Customer   core.CustomerData
	CustomerID int64
	Delivered  bool
}

type Orchestrator struct {
	replier   Replier
	extractor Extractor
	catalog   *core.Catalog
	sender    core.FlyerSender
	customers core.CustomerRepository
	events    core.EventPublisher
	now       func() time.Time
}

type Option func(*Orchestrator)

// WithEvents publishes capture and delivery events. Publishing is best effort.
func WithEvents(p core.EventPublisher) Option {
	return func(o *Orchestrator) {
		o.events = p
	}
}

func NewOrchestrator(
	replier Replier,
	extractor Extractor,
	catalog *core.Catalog,
	sender core.FlyerSender,
	customers core.CustomerRepository,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		replier:   replier,
		extractor: extractor,
		catalog:   catalog,
		sender:    sender,
		customers: customers,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Chat handles one inbound message. history is every earlier turn, oldest first.
// The returned error is only for failures outside the reply, delivery and
// persistence paths; transports should answer it with a generic service error.
func (o *Orchestrator) Chat(ctx context.Context, message string, history []core.Message) (res Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	exchangeID := uuid.NewString()
	ctx = log.With(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str("exchange_id", exchangeID)
	})
	logger := log.FromCtx(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("chat exchange aborted")
			res, err = Result{}, fmt.Errorf("chat exchange %s: %v", exchangeID, r)
		}
	}()

	res.ExchangeID = exchangeID
	res.Response = o.replier.Reply(ctx, message, history)

	turns := make([]core.Message, 0, len(history)+2)
	turns = append(turns, history...)
	turns = append(turns,
		core.Message{Role: core.RoleUser, Content: message},
		core.Message{Role: core.RoleAssistant, Content: res.Response},
	)
	res.Customer = o.extractor.Extract(turns)

	if wantsDelivery(message) {
		o.decideDelivery(ctx, &res, history)
	}

	if !res.Customer.IsEmpty() {
		o.persist(ctx, &res)
	}

	logger.Info().
		Bool("delivered", res.Delivered).
		Int64("customer_id", res.CustomerID).
		Msg("chat exchange completed")
	return res, nil
}

func (o *Orchestrator) decideDelivery(ctx context.Context, res *Result, history []core.Message) {
	logger := log.FromCtx(ctx)
	product, hasProduct := requestedProduct(o.catalog, history)
	email := res.Customer.Email

	switch {
	case email != "" && hasProduct:
		logger.Info().
			Str("email", email).
			Str("product", string(product.ID)).
			Msg("sending flyer")

		if !o.sender.SendFlyer(ctx, email, product.ID) {
			res.Response = deliveryFailedReply
			return
		}

		res.Delivered = true
		res.Response = deliveredReply(product.ID, email)
		res.Customer.SuggestedProduct = string(product.ID)
		res.Customer.FlyerPreference = core.FlyerPreferenceEmail
		o.publish(ctx, SubjectFlyerSent, FlyerSent{
			ExchangeID: res.ExchangeID,
			Email:      email,
			Product:    product.ID,
			SentAt:     o.now().UTC(),
		})
	case email == "":
		res.Response = askEmailReply
	default:
		res.Response = askProductReply(o.catalog)
	}
}

// persist appends the record. Failures are logged and never reach the visitor.
func (o *Orchestrator) persist(ctx context.Context, res *Result) {
	id, err := o.customers.SaveCustomer(ctx, res.Customer)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save customer data")
		return
	}
	res.CustomerID = id

	o.publish(ctx, SubjectCustomerCaptured, CustomerCaptured{
		ExchangeID: res.ExchangeID,
		CustomerID: id,
		Customer:   res.Customer,
		CapturedAt: o.now().UTC(),
	})
}

func (o *Orchestrator) publish(ctx context.Context, subject string, payload any) {
	if o.events == nil {
		return
	}
	if err := o.events.Publish(ctx, subject, payload); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
