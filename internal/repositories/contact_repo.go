package repositories

import (
	"catalog/internal/models"
)

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	GetAll() ([]models.Contact, error)
	GetByID(id uint) (*models.Contact, error)
	Create(contact *models.Contact) error
	Update(contact *models.Contact) error
	Delete(id uint) error
}
