package order

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"store-frontend/internal/api"
	"store-frontend/internal/logger"

	"go.uber.org/zap"
)

// Requester is the subset of the API client the order client needs.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
}

type Service interface {
	Create(ctx context.Context, itemID, quantity int) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int) (*Order, error)
	// Pay only asks the backend to start payment. The returned order still
	// carries the pre-payment status; the outcome arrives later and is only
	// visible by fetching the order again.
	Pay(ctx context.Context, id int) (*Order, error)
	Cancel(ctx context.Context, id int) (*Order, error)
}

type service struct {
	api Requester
}

func NewService(api Requester) Service {
	return &service{api: api}
}

func (s *service) Create(ctx context.Context, itemID, quantity int) (*Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	log := logger.FromCtx(ctx).With(
		zap.Int("item_id", itemID),
		zap.Int("quantity", quantity),
	)

	var o Order
	if err := s.api.Post(ctx, "/orders", createRequest{ItemID: itemID, Quantity: quantity}, &o); err != nil {
		log.Debug("create order failed", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.Int("order_id", o.ID), zap.String("status", string(o.Status)))
	return &o, nil
}

// List returns every order, newest first. Orders without a creation time
// sort last.
func (s *service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.api.Get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	SortNewestFirst(orders)
	return orders, nil
}

func (s *service) Get(ctx context.Context, id int) (*Order, error) {
	if id <= 0 {
		return nil, ErrInvalidOrderID
	}

	var o Order
	if err := s.api.Get(ctx, fmt.Sprintf("/orders/%d", id), &o); err != nil {
		if api.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return nil, err
	}
	return &o, nil
}

func (s *service) Pay(ctx context.Context, id int) (*Order, error) {
	return s.action(ctx, id, "pay")
}

func (s *service) Cancel(ctx context.Context, id int) (*Order, error) {
	return s.action(ctx, id, "cancel")
}

func (s *service) action(ctx context.Context, id int, name string) (*Order, error) {
	if id <= 0 {
		return nil, ErrInvalidOrderID
	}

	log := logger.FromCtx(ctx).With(zap.Int("order_id", id), zap.String("action", name))

	var o Order
	if err := s.api.Post(ctx, fmt.Sprintf("/orders/%d/%s", id, name), nil, &o); err != nil {
		log.Info("order action rejected", zap.Error(err))
		return nil, err
	}

	log.Info("order action accepted", zap.String("status", string(o.Status)))
	return &o, nil
}

func SortNewestFirst(orders []Order) {
	slices.SortStableFunc(orders, func(a, b Order) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
}
