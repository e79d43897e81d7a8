package repositories

import (
	"fmt"
	"sort"
	"sync"

	"catalog/internal/apperror"
	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products ordered by ID.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetBySlug returns a product by its slug.
func (r *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[slug]
	if !ok {
		return nil, fmt.Errorf("product with slug %s: %w", slug, apperror.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product and assigns it the next ID.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.Slug]; exists {
		return fmt.Errorf("product with slug %s: %w", product.Slug, apperror.ErrConflict)
	}
	r.nextID++
	product.ID = r.nextID
	r.products[product.Slug] = *product
	return nil
}

// Update modifies an existing product, matched by ID.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slug, existing := range r.products {
		if existing.ID != product.ID {
			continue
		}
		if slug != product.Slug {
			if _, taken := r.products[product.Slug]; taken {
				return fmt.Errorf("product with slug %s: %w", product.Slug, apperror.ErrConflict)
			}
			delete(r.products, slug)
		}
		r.products[product.Slug] = *product
		return nil
	}
	return fmt.Errorf("product with slug %s not found for update: %w", product.Slug, apperror.ErrNotFound)
}

// Delete removes a product by its slug.
func (r *MockProductRepository) Delete(slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[slug]; !ok {
		return fmt.Errorf("product with slug %s not found for deletion: %w", slug, apperror.ErrNotFound)
	}
	delete(r.products, slug)
	return nil
}
