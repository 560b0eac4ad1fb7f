package product

import "github.com/shopspring/decimal"

const DefaultImage = "/images/default-product.jpg"

type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"imageUrl,omitempty"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// DisplayName falls back to a placeholder for unnamed products.
func (p Product) DisplayName() string {
	if p.Name == "" {
		return "Unnamed Product"
	}
	return p.Name
}

func (p Product) ImageOrDefault() string {
	if p.ImageURL == "" {
		return DefaultImage
	}
	return p.ImageURL
}
