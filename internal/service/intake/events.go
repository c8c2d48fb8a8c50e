package intake

import (
	"time"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
)

const (
	SubjectCustomerCaptured = "flyer.customer.captured"
	SubjectFlyerSent        = "flyer.flyer.sent"
)

type CustomerCaptured struct {
	ExchangeID string            `json:"exchange_id"`
	CustomerID int64             `json:"customer_id"`
	Customer   core.CustomerData `json:"customer"`
	CapturedAt time.Time         `json:"captured_at"`
}

type FlyerSent struct {
	ExchangeID string         `json:"exchange_id"`
	Email      string         `json:"email"`
	Product    core.ProductID `json:"product"`
	SentAt     time.Time      `json:"sent_at"`
}
