package web

import (
	"net/http"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// dealRequest fields are optional. A stage without a probability takes the
// stage default when it differs from the current stage.
type dealRequest struct {
	Name        *string       `json:"name"`
	Value       *float64      `json:"value"`
	Stage       *models.Stage `json:"stage"`
	Probability *int          `json:"probability"`
	CloseDate   *models.Date  `json:"close_date"`
	Contact     *string       `json:"contact"`
	Company     *string       `json:"company"`
	Description *string       `json:"description"`
}

func (d dealRequest) apply(f *forms.DealForm) {
	set(&f.Name, d.Name)
	set(&f.Value, d.Value)
	set(&f.CloseDate, d.CloseDate)
	set(&f.Contact, d.Contact)
	set(&f.Company, d.Company)
	set(&f.Description, d.Description)
	if d.Stage != nil {
		f.SetStage(*d.Stage)
	}
	if d.Probability != nil {
		f.SetProbability(*d.Probability)
	}
}

func (s *Server) listDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.ws.Lock()
	deals := s.ws.Deals.Filter(store.DealFilter{Query: q.Get("q"), Stage: q.Get("stage")})
	s.ws.Unlock()
	writeJSON(w, http.StatusOK, deals)
}

func (s *Server) createDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	f := forms.NewDealForm(s.today())
	req.apply(f)
	if err := f.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	s.ws.Lock()
	created := s.ws.Deals.Create(f.Deal())
	s.ws.Unlock()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	d, ok := s.ws.Deals.Find(id)
	s.ws.Unlock()
	if !ok {
		s.writeError(w, missing(store.KindDeal, id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) updateDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req dealRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.ws.Lock()
	defer s.ws.Unlock()

	existing, ok := s.ws.Deals.Find(id)
	if !ok {
		s.writeError(w, missing(store.KindDeal, id))
		return
	}
	f := forms.EditDealForm(existing)
	req.apply(f)
	if err := f.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	updated, _ := s.ws.Deals.Update(id, f.Deal())
	writeJSON(w, http.StatusOK, updated)
}

type stageRequest struct {
	Stage       models.Stage `json:"stage"`
	Probability *int         `json:"probability"`
}

func (s *Server) changeDealStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req stageRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if !req.Stage.Valid() {
		s.writeError(w, &forms.FieldError{Field: "stage", Err: forms.ErrInvalid})
		return
	}
	if p := req.Probability; p != nil && (*p < 0 || *p > 100) {
		s.writeError(w, &forms.FieldError{Field: "probability", Err: forms.ErrInvalid})
		return
	}

	s.ws.Lock()
	d, ok := s.ws.Deals.ChangeStage(id, req.Stage, req.Probability)
	s.ws.Unlock()
	if !ok {
		s.writeError(w, missing(store.KindDeal, id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	removed := s.ws.Deals.Delete(id)
	s.ws.Unlock()
	if !removed {
		s.writeError(w, missing(store.KindDeal, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
