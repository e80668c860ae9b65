package repositories

import (
	"fmt"
	"slices"
	"sync"

	"catalogue/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// IDs come from a counter and are never reused, even after a delete.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int]models.Product
	order    []int
	lastID   int
}

// NewInMemoryProductRepository creates a new, empty InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int]models.Product),
	}
}

// FindAll returns all products in the order they were saved.
func (r *InMemoryProductRepository) FindAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id].Clone())
	}
	return productList, nil
}

// Save assigns the next ID to product and appends it.
func (r *InMemoryProductRepository) Save(product *models.Product) error {
	if product == nil {
		return fmt.Errorf("cannot save nil product")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	product.ID = r.lastID
	r.products[product.ID] = product.Clone()
	r.order = append(r.order, product.ID)
	return nil
}

// FindByID returns a product by its ID.
func (r *InMemoryProductRepository) FindByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	product = product.Clone()
	return &product, nil
}

// Update modifies an existing product.
func (r *InMemoryProductRepository) Update(product *models.Product) error {
	if product == nil {
		return fmt.Errorf("cannot update nil product")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrProductNotFound)
	}
	r.products[product.ID] = product.Clone()
	return nil
}

// DeleteByID removes a product by its ID.
func (r *InMemoryProductRepository) DeleteByID(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil
	}
	delete(r.products, id)
	r.order = slices.DeleteFunc(r.order, func(v int) bool { return v == id })
	return nil
}
