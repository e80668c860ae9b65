package repositories

import (
	"errors"
	"fmt"

	"catalogue/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindAll retrieves all products ordered by ID.
func (r *GORMProductRepository) FindAll() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// Save inserts product and lets the database assign its ID.
func (r *GORMProductRepository) Save(product *models.Product) error {
	if product == nil {
		return fmt.Errorf("cannot save nil product")
	}
	product.ID = 0
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) FindByID(id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Update updates title and details of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if product == nil {
		return fmt.Errorf("cannot update nil product")
	}
	// A map is used so a nil Details is written as NULL.
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"title":   product.Title,
		"details": product.Details,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrProductNotFound)
	}
	return nil
}

// DeleteByID deletes a product by its ID. A missing row is not an error.
func (r *GORMProductRepository) DeleteByID(id int) error {
	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
