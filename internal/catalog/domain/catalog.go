package domain

import "github.com/ecommerce-app/storefront/pkg/money"

// Product is immutable reference data owned by the catalog.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       money.Money `json:"price"`
	Images      []string    `json:"images"`
	Categories  []string    `json:"categories"`
}

// InCategory reports whether the product is assigned to the category slug.
func (p Product) InCategory(slug string) bool {
	for _, c := range p.Categories {
		if c == slug {
			return true
		}
	}
	return false
}

type Category struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
