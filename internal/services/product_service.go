package services

import (
	"errors"
	"fmt"

	"catalogue/internal/models"
	"catalogue/internal/repositories"

	"go.uber.org/zap"
)

// EventPublisher delivers product change events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // optional
	log       *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// FindAllProducts retrieves all products.
func (s *ProductService) FindAllProducts() ([]models.Product, error) {
	return s.repo.FindAll()
}

// CreateProduct stores a new product and returns it with its assigned ID.
func (s *ProductService) CreateProduct(title string, details *string) (*models.Product, error) {
	product := &models.Product{Title: title, Details: details}
	if err := s.repo.Save(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(models.NewProductEvent(models.ProductCreated, product.ID, product))
	return product, nil
}

// FindProduct retrieves a single product by its ID.
func (s *ProductService) FindProduct(id int) (*models.Product, error) {
	return s.repo.FindByID(id)
}

// UpdateProduct replaces title and details of an existing product.
// It returns an error wrapping repositories.ErrProductNotFound when id is unknown.
func (s *ProductService) UpdateProduct(id int, title string, details *string) error {
	product := &models.Product{ID: id, Title: title, Details: details}
	if err := s.repo.Update(product); err != nil {
		return err
	}

	s.publish(models.NewProductEvent(models.ProductUpdated, id, product))
	return nil
}

// DeleteProduct deletes a product by its ID. Deleting an unknown ID is a no-op.
func (s *ProductService) DeleteProduct(id int) error {
	_, err := s.repo.FindByID(id)
	existed := err == nil
	if err != nil && !errors.Is(err, repositories.ErrProductNotFound) {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	if err := s.repo.DeleteByID(id); err != nil {
		return err
	}

	if existed {
		s.publish(models.NewProductEvent(models.ProductDeleted, id, nil))
	}
	return nil
}

func (s *ProductService) publish(event models.ProductEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("type", event.Type),
			zap.Int("product_id", event.ProductID),
			zap.Error(err),
		)
	}
}
