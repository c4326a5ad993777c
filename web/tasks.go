package web

import (
	"encoding/json"
	"net/http"

	"github.com/harperreed/crmpro/forms"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// taskRequest fields are optional. related_contact and related_deal accept
// null or "" to clear the link.
type taskRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	DueDate        *models.Date       `json:"due_date"`
	Priority       *models.Priority   `json:"priority"`
	Status         *models.TaskStatus `json:"status"`
	Assignee       *string            `json:"assignee"`
	RelatedContact json.RawMessage    `json:"related_contact"`
	RelatedDeal    json.RawMessage    `json:"related_deal"`
}

func (t taskRequest) apply(f *forms.TaskForm) error {
	set(&f.Title, t.Title)
	set(&f.Description, t.Description)
	set(&f.DueDate, t.DueDate)
	set(&f.Priority, t.Priority)
	set(&f.Status, t.Status)
	set(&f.Assignee, t.Assignee)
	if err := applyOptional(&f.RelatedContact, t.RelatedContact); err != nil {
		return err
	}
	return applyOptional(&f.RelatedDeal, t.RelatedDeal)
}

// applyOptional leaves dst alone when the key was absent and clears it on null.
func applyOptional(dst *string, raw json.RawMessage) error {
	if raw == nil {
		return nil
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return &forms.FieldError{Field: "related", Err: forms.ErrInvalid}
	}
	*dst = models.StringValue(v)
	return nil
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.ws.Lock()
	tasks := s.ws.Tasks.Filter(store.TaskFilter{
		Query:    q.Get("q"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	})
	s.ws.Unlock()
	writeJSON(w, http.StatusOK, s.taskViews(tasks))
}

// taskView adds the due-date classification to a task.
type taskView struct {
	models.Task
	DueState models.DueState `json:"due_state,omitempty"`
}

func (s *Server) taskView(t models.Task) taskView {
	return taskView{Task: t, DueState: models.Classify(t, s.today())}
}

func (s *Server) taskViews(tasks []models.Task) []taskView {
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.taskView(t))
	}
	return out
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	f := forms.NewTaskForm(s.today(), s.user)
	if err := req.apply(f); err != nil {
		s.writeError(w, err)
		return
	}
	if err := f.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	s.ws.Lock()
	created := s.ws.Tasks.Create(f.Task())
	s.ws.Unlock()
	writeJSON(w, http.StatusCreated, s.taskView(created))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	t, ok := s.ws.Tasks.Find(id)
	s.ws.Unlock()
	if !ok {
		s.writeError(w, missing(store.KindTask, id))
		return
	}
	writeJSON(w, http.StatusOK, s.taskView(t))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req taskRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.ws.Lock()
	defer s.ws.Unlock()

	existing, ok := s.ws.Tasks.Find(id)
	if !ok {
		s.writeError(w, missing(store.KindTask, id))
		return
	}
	f := forms.EditTaskForm(existing)
	if err := req.apply(f); err != nil {
		s.writeError(w, err)
		return
	}
	if err := f.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	updated, _ := s.ws.Tasks.Update(id, f.Task())
	writeJSON(w, http.StatusOK, s.taskView(updated))
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	t, ok := s.ws.Tasks.ToggleStatus(id)
	s.ws.Unlock()
	if !ok {
		s.writeError(w, missing(store.KindTask, id))
		return
	}
	writeJSON(w, http.StatusOK, s.taskView(t))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.ws.Lock()
	removed := s.ws.Tasks.Delete(id)
	s.ws.Unlock()
	if !removed {
		s.writeError(w, missing(store.KindTask, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
