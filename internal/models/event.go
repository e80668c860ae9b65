package models

import (
	"time"

	"github.com/google/uuid"
)

// Product event types published after a successful mutation.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent describes a change to a product.
type ProductEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ProductID  int       `json:"product_id"`
	Product    *Product  `json:"product"` // nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProductEvent builds an event of the given type for product id.
func NewProductEvent(eventType string, productID int, product *Product) ProductEvent {
	var snapshot *Product
	if product != nil {
		p := product.Clone()
		snapshot = &p
	}
	return ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		Product:    snapshot,
		OccurredAt: time.Now().UTC(),
	}
}
