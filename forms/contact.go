package forms

import (
	"errors"

	"github.com/harperreed/crmpro/models"
)

// ContactForm is the draft behind the contact create/edit form.
type ContactForm struct {
	Mode     Mode
	ID       int
	Name     string
	Email    string
	Phone    string
	Company  string
	Position string
	Location string
	Status   models.ContactStatus
}

// NewContactForm opens a create form. New contacts start as prospects.
func NewContactForm() *ContactForm {
	return &ContactForm{Mode: ModeCreate, Status: models.StatusProspect}
}

// EditContactForm opens an edit form populated from c.
func EditContactForm(c models.Contact) *ContactForm {
	return &ContactForm{
		Mode:     ModeEdit,
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Company:  c.Company,
		Position: c.Position,
		Location: c.Location,
		Status:   c.Status,
	}
}

// Validate enforces the fields the store assumes are present.
func (f *ContactForm) Validate() error {
	errs := []error{
		required("name", f.Name),
		required("email", f.Email),
		required("company", f.Company),
	}
	if !f.Status.Valid() {
		errs = append(errs, invalid("status", "%q", f.Status))
	}
	return errors.Join(errs...)
}

// Contact returns the model value to pass to the store.
func (f *ContactForm) Contact() models.Contact {
	return models.Contact{
		ID:       f.ID,
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Company:  f.Company,
		Position: f.Position,
		Location: f.Location,
		Status:   f.Status,
	}
}
