package repositories

import (
	"fmt"
	"sort"
	"sync"

	"catalog/internal/apperror"
	"catalog/internal/models"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
type MockContactRepository struct {
	contacts map[uint]models.Contact
	nextID   uint
	mu       sync.RWMutex
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[uint]models.Contact),
	}
}

// GetAll returns all contacts ordered by ID.
func (r *MockContactRepository) GetAll() ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contactList := make([]models.Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		contactList = append(contactList, contact)
	}
	sort.Slice(contactList, func(i, j int) bool { return contactList[i].ID < contactList[j].ID })
	return contactList, nil
}

// GetByID returns a contact by its ID.
func (r *MockContactRepository) GetByID(id uint) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact with ID %d: %w", id, apperror.ErrNotFound)
	}
	return &contact, nil
}

// Create adds a new contact with the next free ID.
func (r *MockContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	contact.ID = r.nextID
	r.contacts[contact.ID] = *contact
	return nil
}

// Update replaces an existing contact.
func (r *MockContactRepository) Update(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[contact.ID]; !ok {
		return fmt.Errorf("contact with ID %d not found for update: %w", contact.ID, apperror.ErrNotFound)
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Delete removes a contact by its ID.
func (r *MockContactRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return fmt.Errorf("contact with ID %d not found for deletion: %w", id, apperror.ErrNotFound)
	}
	delete(r.contacts, id)
	return nil
}
