package repositories

import (
	"errors"

	"catalogue/internal/models"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// FindAll returns a snapshot of all products in insertion order.
	FindAll() ([]models.Product, error)
	// Save assigns the next ID to product and stores it.
	Save(product *models.Product) error
	FindByID(id int) (*models.Product, error)
	// Update replaces the title and details of an existing product.
	Update(product *models.Product) error
	// DeleteByID removes a product. Deleting a missing ID is not an error.
	DeleteByID(id int) error
}
