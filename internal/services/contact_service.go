package services

import (
	"fmt"
	"strconv"

	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/serializers"

	"go.uber.org/zap"
)

const contactResource = "contact"

// ContactService handles business logic related to contacts.
type ContactService struct {
	repo       repositories.ContactRepository
	serializer *serializers.ContactSerializer
	events     events.Publisher
	log        *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository, publisher events.Publisher, log *zap.Logger) *ContactService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactService{
		repo:       repo,
		serializer: serializers.NewContactSerializer(),
		events:     publisher,
		log:        log,
	}
}

// GetAllContacts retrieves all contacts.
func (s *ContactService) GetAllContacts() ([]models.Contact, error) {
	return s.repo.GetAll()
}

// GetContactByID retrieves a single contact by its ID.
func (s *ContactService) GetContactByID(id uint) (*models.Contact, error) {
	return s.repo.GetByID(id)
}

// CreateContact validates payload and stores a new contact.
func (s *ContactService) CreateContact(payload serializers.Payload) (*models.Contact, error) {
	contact, err := s.serializer.Validate(payload, nil, false)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(&contact); err != nil {
		return nil, err
	}
	s.publish(events.ActionCreated, contact)
	return &contact, nil
}

// UpdateContact validates payload against the stored contact and writes the result.
func (s *ContactService) UpdateContact(id uint, payload serializers.Payload, partial bool) (*models.Contact, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	contact, err := s.serializer.Validate(payload, existing, partial)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(&contact); err != nil {
		return nil, fmt.Errorf("failed to update contact %d: %w", id, err)
	}
	s.publish(events.ActionUpdated, contact)
	return &contact, nil
}

// DeleteContact deletes a contact by its ID.
func (s *ContactService) DeleteContact(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(events.ActionDeleted, models.Contact{ID: id})
	return nil
}

func (s *ContactService) publish(action string, contact models.Contact) {
	var data interface{}
	if action != events.ActionDeleted {
		data = serializers.SerializeContact(contact)
	}
	key := strconv.FormatUint(uint64(contact.ID), 10)
	if err := s.events.Publish(events.New(contactResource, action, key, data)); err != nil {
		s.log.Warn("failed to publish contact event",
			zap.String("action", action),
			zap.Uint("id", contact.ID),
			zap.Error(err))
	}
}
