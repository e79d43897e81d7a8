package serializers

import (
	"catalog/internal/apperror"
	"catalog/internal/models"
)

// ContactData is the wire representation of a contact.
type ContactData struct {
	ID    uint   `json:"id"`
	FName string `json:"fname"`
	LName string `json:"lname"`
}

type contactFields struct {
	FName *string `json:"fname" validate:"omitempty,min=1,max=100"`
	LName *string `json:"lname" validate:"omitempty,min=1,max=100"`
}

// ContactSerializer validates contact payloads.
type ContactSerializer struct{}

// NewContactSerializer creates a ContactSerializer.
func NewContactSerializer() *ContactSerializer {
	return &ContactSerializer{}
}

// Validate checks payload and returns the contact that should be stored.
// instance is nil on create; partial restricts checks to present fields.
func (s *ContactSerializer) Validate(payload Payload, instance *models.Contact, partial bool) (models.Contact, error) {
	errs := apperror.NewValidationError()

	fields := contactFields{
		FName: stringField(payload, "fname", errs),
		LName: stringField(payload, "lname", errs),
	}
	if !partial {
		requireFields(payload, errs, "fname", "lname")
	}
	checkConstraints(fields, errs)

	if errs.HasErrors() {
		return models.Contact{}, errs
	}

	var contact models.Contact
	if instance != nil {
		contact = *instance
	}
	if fields.FName != nil {
		contact.FName = *fields.FName
	}
	if fields.LName != nil {
		contact.LName = *fields.LName
	}
	return contact, nil
}

// SerializeContact maps a contact to its wire representation.
func SerializeContact(c models.Contact) ContactData {
	return ContactData{ID: c.ID, FName: c.FName, LName: c.LName}
}

// SerializeContacts maps a list of contacts; the result is never nil.
func SerializeContacts(contacts []models.Contact) []ContactData {
	out := make([]ContactData, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, SerializeContact(c))
	}
	return out
}
