package core

import "context"

type CustomerRepository interface {
	SaveCustomer(ctx context.Context, data CustomerData) (int64, error)
}

type CustomerLister interface {
	ListCustomers(ctx context.Context, limit int) ([]StoredCustomer, error)
}

// MessagesRepository keeps transport-owned transcripts, keyed by session.
type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
}
