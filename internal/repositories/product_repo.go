package repositories

import (
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookups are by slug; Create fails with apperror.ErrConflict on a duplicate slug.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(slug string) error
}
