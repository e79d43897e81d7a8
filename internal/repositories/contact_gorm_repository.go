package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/apperror"
	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// GetAll retrieves all contacts ordered by ID.
func (r *GORMContactRepository) GetAll() ([]models.Contact, error) {
	contacts := []models.Contact{}
	if err := r.db.Order("id").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all contacts: %w", err)
	}
	return contacts, nil
}

// GetByID retrieves a single contact by its ID.
func (r *GORMContactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %d: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact by ID %d: %w", id, err)
	}
	return &contact, nil
}

// Create inserts a contact; the database assigns its ID.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Update writes both name columns of an existing contact.
func (r *GORMContactRepository) Update(contact *models.Contact) error {
	res := r.db.Model(&models.Contact{}).Where("id = ?", contact.ID).Updates(map[string]interface{}{
		"fname": contact.FName,
		"lname": contact.LName,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %d not found for update: %w", contact.ID, apperror.ErrNotFound)
	}
	return nil
}

// Delete removes a contact by its ID.
func (r *GORMContactRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %d not found for deletion: %w", id, apperror.ErrNotFound)
	}
	return nil
}
