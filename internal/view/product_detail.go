package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"store-frontend/internal/logger"
	"store-frontend/internal/order"
	"store-frontend/internal/product"

	"go.uber.org/zap"
)

type ProductDetailState struct {
	Product   *product.Product
	Quantity  int
	Loading   bool
	Ordering  bool
	Error     string
	Success   string
	LastOrder *order.Order
}

// ProductDetail shows one product and buys it: create the order, then fire
// the payment request.
type ProductDetail struct {
	products product.Service
	orders   order.Service
	nav      Navigator

	mu    sync.Mutex
	state ProductDetailState
}

func NewProductDetail(products product.Service, orders order.Service, nav Navigator) *ProductDetail {
	return &ProductDetail{
		products: products,
		orders:   orders,
		nav:      nav,
		state:    ProductDetailState{Loading: true, Quantity: 1},
	}
}

func (v *ProductDetail) State() ProductDetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	if v.state.Product != nil {
		p := *v.state.Product
		s.Product = &p
	}
	return s
}

// Load finds the product in the catalogue; there is no single-product endpoint.
func (v *ProductDetail) Load(ctx context.Context, id int) error {
	v.mu.Lock()
	v.state = ProductDetailState{Loading: true, Quantity: 1}
	v.mu.Unlock()

	products, err := v.products.GetAll(ctx)
	var p *product.Product
	if err == nil {
		p, err = product.FindByID(products, id)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		v.state.Error = "Product not found"
		return err
	case err != nil:
		v.state.Error = Describe(err, "Failed to load product")
		logger.FromCtx(ctx).Info("error loading product", zap.Int("product_id", id), zap.Error(err))
		return err
	}
	v.state.Product = p
	return nil
}

// SetQuantity accepts n only within [1, stock], like the quantity input.
func (v *ProductDetail) SetQuantity(n int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Product == nil || n < 1 || n > v.state.Product.Stock {
		return false
	}
	v.state.Quantity = n
	return true
}

func (v *ProductDetail) Increment() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Product != nil && v.state.Quantity < v.state.Product.Stock {
		v.state.Quantity++
	}
}

func (v *ProductDetail) Decrement() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Quantity > 1 {
		v.state.Quantity--
	}
}

// Purchase validates the quantity against stock, creates the order and asks
// for payment. The order is still PENDING when this returns.
func (v *ProductDetail) Purchase(ctx context.Context) (*order.Order, error) {
	v.mu.Lock()
	p, qty := v.state.Product, v.state.Quantity
	switch {
	case p == nil:
		v.mu.Unlock()
		return nil, ErrProductNotLoaded
	case !p.InStock():
		v.state.Error = "This product is out of stock."
		v.mu.Unlock()
		return nil, ErrOutOfStock
	case qty <= 0 || qty > p.Stock:
		v.state.Error = fmt.Sprintf("Please enter a quantity between 1 and %d", p.Stock)
		v.mu.Unlock()
		return nil, ErrQuantityOutOfRange
	}
	v.state.Ordering = true
	v.state.Error = ""
	v.state.Success = "Creating order..."
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.state.Ordering = false
		v.mu.Unlock()
	}()

	log := logger.FromCtx(ctx).With(zap.Int("product_id", p.ID), zap.Int("quantity", qty))

	created, err := v.orders.Create(ctx, p.ID, qty)
	if err != nil {
		log.Info("create order failed", zap.Error(err))
		v.fail(Describe(err, "Failed to complete purchase. Please try again."))
		return nil, err
	}

	v.mu.Lock()
	v.state.LastOrder = created
	v.state.Success = "Processing payment..."
	v.mu.Unlock()

	if _, err := v.orders.Pay(ctx, created.ID); err != nil {
		log.Info("payment request failed", zap.Int("order_id", created.ID), zap.Error(err))
		v.fail(fmt.Sprintf("Order #%d was created but the payment request failed: %s",
			created.ID, Describe(err, "Failed to complete purchase. Please try again.")))
		return created, err
	}

	v.mu.Lock()
	v.state.Success = fmt.Sprintf(
		"Order #%d created and payment requested. Payment is processed asynchronously; check your orders for the confirmed status.",
		created.ID,
	)
	v.mu.Unlock()

	v.nav.Navigate(RouteOrders)
	return created, nil
}

func (v *ProductDetail) fail(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Error = msg
	v.state.Success = ""
}
