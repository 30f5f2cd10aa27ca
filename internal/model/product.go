package model

import "time"

// Product represents a building-materials product in the catalogue.
// Products are created and updated externally; this system only reads them.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Image       string    `json:"image" db:"image"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PriceOnRequest reports whether the product has no listed price.
// A zero price means the price is negotiated per order.
func (p *Product) PriceOnRequest() bool {
	return p.Price <= 0
}
