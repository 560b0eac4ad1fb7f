package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Normalize upper-cases the status as received from the backend.
func (s Status) Normalize() Status {
	return Status(strings.ToUpper(strings.TrimSpace(string(s))))
}

func (s Status) Is(other Status) bool {
	return s.Normalize() == other
}

func (s Status) Label() string {
	if n := s.Normalize(); n != "" {
		return string(n)
	}
	return "UNKNOWN"
}

type Order struct {
	ID                  int             `json:"id"`
	ItemID              int             `json:"itemId"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	Status              Status          `json:"status"`
	CreatedAt           Timestamp       `json:"createdAt"`
	DeliveryRequestSent bool            `json:"deliveryRequestSent"`
}

// Total is price times quantity; a missing quantity counts as one.
func (o Order) Total() decimal.Decimal {
	qty := o.Quantity
	if qty == 0 {
		qty = 1
	}
	return o.Price.Mul(decimal.NewFromInt(int64(qty)))
}

type createRequest struct {
	ItemID   int `json:"itemId"`
	Quantity int `json:"quantity"`
}
