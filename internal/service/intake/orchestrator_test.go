package intake

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/service/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedReplier string

func (f fixedReplier) Reply(ctx context.Context, message string, history []core.Message) string {
	return string(f)
}

type panicReplier struct{}

func (panicReplier) Reply(ctx context.Context, message string, history []core.Message) string {
	panic("boom")
}

type sendCall struct {
	email   string
	product core.ProductID
}

type fakeSender struct {
	mu    sync.Mutex
	ok    bool
	calls []sendCall
}

func (f *fakeSender) SendFlyer(ctx context.Context, email string, product core.ProductID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sendCall{email, product})
	return f.ok
}

type fakeCustomers struct {
	mu    sync.Mutex
	err   error
	saved []core.CustomerData
}

func (f *fakeCustomers) SaveCustomer(ctx context.Context, data core.CustomerData) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, data)
	return int64(len(f.saved)), nil
}

type publishedEvent struct {
	subject string
	payload any
}

type fakeEvents struct {
	events []publishedEvent
}

func (f *fakeEvents) Publish(ctx context.Context, subject string, payload any) error {
	f.events = append(f.events, publishedEvent{subject, payload})
	return nil
}

func newTestOrchestrator(reply string, sender *fakeSender, customers *fakeCustomers, opts ...Option) *Orchestrator {
	return NewOrchestrator(fixedReplier(reply), extract.Default(), core.DefaultCatalog(), sender, customers, opts...)
}

func ppeHistory(withEmail bool) []core.Message {
	history := []core.Message{
		{Role: core.RoleAssistant, Content: core.Greeting},
		{Role: core.RoleUser, Content: "We need workplace safety monitoring"},
		{Role: core.RoleAssistant, Content: "I recommend PPE-Detection. What's your email?"},
	}
	if withEmail {
		history = append(history, core.Message{Role: core.RoleUser, Content: "my email is jane@example.com"})
	}
	return history
}

func TestChat_SendsFlyerWhenEmailAndProductKnown(t *testing.T) {
	sender := &fakeSender{ok: true}
	customers := &fakeCustomers{}
	events := &fakeEvents{}
	o := newTestOrchestrator("Sure!", sender, customers, WithEvents(events))

	res, err := o.Chat(context.Background(), "yes please send it", ppeHistory(true))
	require.NoError(t, err)

	require.Len(t, sender.calls, 1)
	assert.Equal(t, sendCall{"jane@example.com", core.ProductPPEDetection}, sender.calls[0])

	assert.True(t, res.Delivered)
	assert.Contains(t, res.Response, "PPE-Detection")
	assert.Contains(t, res.Response, "jane@example.com")
	assert.NotEmpty(t, res.ExchangeID)

	require.Len(t, customers.saved, 1)
	assert.Equal(t, "jane@example.com", customers.saved[0].Email)
	assert.Equal(t, "PPE-Detection", customers.saved[0].SuggestedProduct)
	assert.Equal(t, core.FlyerPreferenceEmail, customers.saved[0].FlyerPreference)
	assert.Equal(t, int64(1), res.CustomerID)

	require.Len(t, events.events, 2)
	assert.Equal(t, SubjectFlyerSent, events.events[0].subject)
	assert.Equal(t, SubjectCustomerCaptured, events.events[1].subject)
	captured, ok := events.events[1].payload.(CustomerCaptured)
	require.True(t, ok)
	assert.Equal(t, res.ExchangeID, captured.ExchangeID)
}

func TestChat_AsksForEmailWhenMissing(t *testing.T) {
	sender := &fakeSender{ok: true}
	customers := &fakeCustomers{}
	o := newTestOrchestrator("Sure!", sender, customers)

	res, err := o.Chat(context.Background(), "yes please send it", ppeHistory(false))
	require.NoError(t, err)

	assert.Empty(t, sender.calls)
	assert.False(t, res.Delivered)
	assert.Equal(t, askEmailReply, res.Response)
	assert.Contains(t, res.Response, "email address")
}

func TestChat_AsksForProductWhenMissing(t *testing.T) {
	sender := &fakeSender{ok: true}
	o := newTestOrchestrator("Sure!", sender, &fakeCustomers{})

	history := []core.Message{
		{Role: core.RoleAssistant, Content: core.Greeting},
		{Role: core.RoleUser, Content: "my email is jane@example.com"},
	}
	res, err := o.Chat(context.Background(), "send me the flyer", history)
	require.NoError(t, err)

	assert.Empty(t, sender.calls)
	assert.Equal(t, "Which product flyer would you like? (Email-Response-Prediction or PPE-Detection)", res.Response)
}

func TestChat_DeliveryFailure(t *testing.T) {
	sender := &fakeSender{ok: false}
	customers := &fakeCustomers{}
	events := &fakeEvents{}
	o := newTestOrchestrator("Sure!", sender, customers, WithEvents(events))

	res, err := o.Chat(context.Background(), "yes", ppeHistory(true))
	require.NoError(t, err)

	assert.Len(t, sender.calls, 1)
	assert.False(t, res.Delivered)
	assert.Equal(t, deliveryFailedReply, res.Response)

	require.Len(t, customers.saved, 1)
	assert.Empty(t, customers.saved[0].SuggestedProduct)
	assert.Empty(t, customers.saved[0].FlyerPreference)

	require.Len(t, events.events, 1)
	assert.Equal(t, SubjectCustomerCaptured, events.events[0].subject)
}

func TestChat_NoDeliveryIntentKeepsModelReply(t *testing.T) {
	sender := &fakeSender{ok: true}
	o := newTestOrchestrator("Great, what is your name?", sender, &fakeCustomers{})

	res, err := o.Chat(context.Background(), "I run a factory", ppeHistory(true))
	require.NoError(t, err)

	assert.Empty(t, sender.calls)
	assert.Equal(t, "Great, what is your name?", res.Response)
}

func TestChat_FirstProductMentionWins(t *testing.T) {
	sender := &fakeSender{ok: true}
	o := newTestOrchestrator("Sure!", sender, &fakeCustomers{})

	history := []core.Message{
		{Role: core.RoleUser, Content: "Tell me about Email-Response-Prediction"},
		{Role: core.RoleUser, Content: "Actually PPE sounds good too"},
		{Role: core.RoleUser, Content: "jane@example.com"},
	}
	_, err := o.Chat(context.Background(), "sure", history)
	require.NoError(t, err)

	require.Len(t, sender.calls, 1)
	assert.Equal(t, core.ProductEmailResponsePrediction, sender.calls[0].product)
}

func TestChat_ProductOnlyFromHistory(t *testing.T) {
	sender := &fakeSender{ok: true}
	o := newTestOrchestrator("Sure!", sender, &fakeCustomers{})

	history := []core.Message{{Role: core.RoleUser, Content: "jane@example.com"}}
	res, err := o.Chat(context.Background(), "yes, the PPE-Detection flyer", history)
	require.NoError(t, err)

	assert.Empty(t, sender.calls)
	assert.Contains(t, res.Response, "Which product flyer")
}

func TestChat_PersistenceFailureIsNotSurfaced(t *testing.T) {
	customers := &fakeCustomers{err: errors.New("disk full")}
	o := newTestOrchestrator("Thanks Jane!", &fakeSender{}, customers)

	res, err := o.Chat(context.Background(), "my name is jane", nil)
	require.NoError(t, err)

	assert.Equal(t, "Thanks Jane!", res.Response)
	assert.Equal(t, "Jane", res.Customer.Name)
	assert.Zero(t, res.CustomerID)
}

func TestChat_EmptyRecordNotPersisted(t *testing.T) {
	customers := &fakeCustomers{}
	o := newTestOrchestrator("Hi there", &fakeSender{}, customers)

	res, err := o.Chat(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.True(t, res.Customer.IsEmpty())
	assert.Empty(t, customers.saved)
}

func TestChat_PersistsEveryExchange(t *testing.T) {
	customers := &fakeCustomers{}
	o := newTestOrchestrator("Noted", &fakeSender{}, customers)

	history := []core.Message{{Role: core.RoleUser, Content: "my name is jane"}}
	for i := 0; i < 2; i++ {
		_, err := o.Chat(context.Background(), "ok", history)
		require.NoError(t, err)
	}

	assert.Len(t, customers.saved, 2)
}

func TestChat_UnexpectedFailureSurfacesAsError(t *testing.T) {
	o := NewOrchestrator(panicReplier{}, extract.Default(), core.DefaultCatalog(), &fakeSender{}, &fakeCustomers{})

	_, err := o.Chat(context.Background(), "hello", nil)
	assert.Error(t, err)
}

func TestChat_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOrchestrator("x", &fakeSender{}, &fakeCustomers{}).Chat(ctx, "hello", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWantsDelivery(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"Yes please", true},
		{"SURE", true},
		{"can you send it", true},
		{"email works", true},
		{"the flyer", true},
		{"no thanks", false},
		{"I run a factory", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, wantsDelivery(tt.message))
		})
	}
}
