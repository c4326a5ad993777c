package web

import (
	"net/http"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// contactRequest carries the fields a client sent; nil means keep the form value.
type contactRequest struct {
	Name     *string               `json:"name"`
	Email    *string               `json:"email"`
	Phone    *string               `json:"phone"`
	Company  *string               `json:"company"`
	Position *string               `json:"position"`
	Location *string               `json:"location"`
	Status   *models.ContactStatus `json:"status"`
}

func (c contactRequest) apply(f *forms.ContactForm) {
	set(&f.Name, c.Name)
	set(&f.Email, c.Email)
	set(&f.Phone, c.Phone)
	set(&f.Company, c.Company)
	set(&f.Position, c.Position)
	set(&f.Location, c.Location)
	set(&f.Status, c.Status)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.ws.Lock()
	contacts := s.ws.Contacts.Filter(store.ContactFilter{Query: q.Get("q"), Status: q.Get("status")})
	s.ws.Unlock()
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	f := forms.NewContactForm()
	req.apply(f)
	if err := f.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	s.ws.Lock()
	created := s.ws.Contacts.Create(f.Contact())
	s.ws.Unlock()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	c, ok := s.ws.Contacts.Find(id)
	s.ws.Unlock()
	if !ok {
		s.writeError(w, missing(store.KindContact, id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req contactRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.ws.Lock()
	defer s.ws.Unlock()

	existing, ok := s.ws.Contacts.Find(id)
	if !ok {
		s.writeError(w, missing(store.KindContact, id))
		return
	}
	f := forms.EditContactForm(existing)
	req.apply(f)
	if err := f.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	updated, _ := s.ws.Contacts.Update(id, f.Contact())
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	removed := s.ws.Contacts.Delete(id)
	s.ws.Unlock()
	if !removed {
		s.writeError(w, missing(store.KindContact, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
