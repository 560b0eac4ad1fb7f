package product

import (
	"context"
	"fmt"
	"strings"

	"store-frontend/internal/logger"

	"go.uber.org/zap"
)

// Requester is the subset of the API client the product client needs.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
}

type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
}

type service struct {
	api Requester
}

func NewService(api Requester) Service {
	return &service{api: api}
}

func (s *service) GetAll(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.api.Get(ctx, "/products", &products); err != nil {
		logger.FromCtx(ctx).Debug("get products failed", zap.Error(err))
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

func FindByID(products []Product, id int) (*Product, error) {
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
}

// Search keeps products whose name contains query, ignoring case. A blank
// query keeps everything.
func Search(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func StockLabel(stock int) string {
	if stock < 0 {
		stock = 0
	}
	if stock == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", stock)
}
