package view

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"store-frontend/internal/logger"
	"store-frontend/internal/product"

	"go.uber.org/zap"
)

// seeAllThreshold is how many products fit before a "See All" link is shown.
const seeAllThreshold = 10

type ProductListState struct {
	Products []product.Product
	Visible  []product.Product
	Query    string
	Loading  bool
	Error    string
}

// EmptyMessage explains an empty listing, or returns "" when there is
// something to show.
func (s ProductListState) EmptyMessage() string {
	switch {
	case s.Loading || len(s.Visible) > 0:
		return ""
	case len(s.Products) == 0 && s.Error == "":
		return "No products available at the moment."
	case s.Query != "":
		return fmt.Sprintf("No products found matching %q", s.Query)
	}
	return ""
}

func (s ProductListState) Heading() string {
	return fmt.Sprintf("Popular Products Top %d", len(s.Visible))
}

func (s ProductListState) ShowSeeAll() bool {
	return len(s.Visible) > seeAllThreshold
}

// ProductList is the browse screen with client-side name search.
type ProductList struct {
	products product.Service

	mu    sync.Mutex
	state ProductListState
}

func NewProductList(products product.Service) *ProductList {
	return &ProductList{
		products: products,
		state:    ProductListState{Loading: true},
	}
}

func (v *ProductList) State() ProductListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Products = slices.Clone(v.state.Products)
	s.Visible = slices.Clone(v.state.Visible)
	return s
}

func (v *ProductList) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state.Loading = true
	v.state.Error = ""
	v.mu.Unlock()

	products, err := v.products.GetAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	if err != nil {
		v.state.Error = Describe(err, "Failed to load products")
		logger.FromCtx(ctx).Info("error loading products", zap.Error(err))
		return err
	}
	v.state.Products = products
	v.state.Visible = product.Search(products, v.state.Query)
	return nil
}

func (v *ProductList) Search(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Query = query
	v.state.Visible = product.Search(v.state.Products, query)
}
