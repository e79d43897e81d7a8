package services

import (
	"errors"
	"fmt"

	"catalog/internal/apperror"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/serializers"

	"go.uber.org/zap"
)

const productResource = "product"

// ProductService handles business logic related to products.
// Every write goes through the serializer first and issues exactly one
// repository call.
type ProductService struct {
	repo       repositories.ProductRepository
	serializer *serializers.ProductSerializer
	events     events.Publisher
	log        *zap.Logger
}

// NewProductService creates a new ProductService. A nil publisher or logger
// disables event publishing or logging respectively.
func NewProductService(repo repositories.ProductRepository, publisher events.Publisher, log *zap.Logger) *ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		repo:       repo,
		serializer: serializers.NewProductSerializer(repo),
		events:     publisher,
		log:        log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	return s.repo.GetBySlug(slug)
}

// CreateProduct validates payload and stores a new product.
func (s *ProductService) CreateProduct(payload serializers.Payload) (*models.Product, error) {
	product, err := s.serializer.Validate(payload, nil, false)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(&product); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, serializers.SlugConflict()
		}
		return nil, err
	}
	s.publish(events.ActionCreated, product)
	return &product, nil
}

// UpdateProduct validates payload against the product stored under slug and
// writes the result. With partial set, absent fields keep their stored values.
func (s *ProductService) UpdateProduct(slug string, payload serializers.Payload, partial bool) (*models.Product, error) {
	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	product, err := s.serializer.Validate(payload, existing, partial)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(&product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", slug, err)
	}
	s.publish(events.ActionUpdated, product)
	return &product, nil
}

// DeleteProduct deletes a product by its slug.
func (s *ProductService) DeleteProduct(slug string) error {
	if err := s.repo.Delete(slug); err != nil {
		return err
	}
	s.publish(events.ActionDeleted, models.Product{Slug: slug})
	return nil
}

// publish is best-effort: a broker failure never fails the write.
func (s *ProductService) publish(action string, product models.Product) {
	var data interface{}
	if action != events.ActionDeleted {
		data = serializers.SerializeProduct(product)
	}
	if err := s.events.Publish(events.New(productResource, action, product.Slug, data)); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("action", action),
			zap.String("slug", product.Slug),
			zap.Error(err))
	}
}
