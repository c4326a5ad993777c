package forms

import (
	"errors"

	"github.com/harperreed/crmpro/models"
)

// DefaultCloseDays is how far out a new deal's close date is placed.
const DefaultCloseDays = 30

// DealForm is the draft behind the deal create/edit form.
type DealForm struct {
	Mode        Mode
	ID          int
	Name        string
	Value       float64
	Stage       models.Stage
	Probability int
	CloseDate   models.Date
	Contact     string
	Company     string
	Description string
}

// NewDealForm opens a create form. The defaults are computed once, here.
func NewDealForm(today models.Date) *DealForm {
	p, _ := models.DefaultProbability(models.StageLead)
	return &DealForm{
		Mode:        ModeCreate,
		Stage:       models.StageLead,
		Probability: p,
		CloseDate:   today.AddDays(DefaultCloseDays),
	}
}

// EditDealForm opens an edit form populated from d.
func EditDealForm(d models.Deal) *DealForm {
	return &DealForm{
		Mode:        ModeEdit,
		ID:          d.ID,
		Name:        d.Name,
		Value:       d.Value,
		Stage:       d.Stage,
		Probability: d.Probability,
		CloseDate:   d.CloseDate,
		Contact:     d.Contact,
		Company:     d.Company,
		Description: d.Description,
	}
}

// SetStage changes the stage and resets the probability to the stage default
// whenever the stage differs from the current one.
func (f *DealForm) SetStage(stage models.Stage) {
	changed := stage != f.Stage
	f.Stage = stage
	f.Probability = models.DeriveProbability(stage, f.Probability, changed)
}

// SetProbability overrides the stage default until the stage changes again.
func (f *DealForm) SetProbability(p int) {
	f.Probability = p
}

func (f *DealForm) Validate() error {
	errs := []error{
		required("name", f.Name),
		required("contact", f.Contact),
		required("company", f.Company),
	}
	if f.Value < 0 {
		errs = append(errs, invalid("value", "must not be negative"))
	}
	if !f.Stage.Valid() {
		errs = append(errs, invalid("stage", "%q", f.Stage))
	}
	if f.Probability < 0 || f.Probability > 100 {
		errs = append(errs, invalid("probability", "%d is outside 0-100", f.Probability))
	}
	if f.CloseDate.IsZero() {
		errs = append(errs, &FieldError{Field: "close date", Err: ErrRequired})
	}
	return errors.Join(errs...)
}

func (f *DealForm) Deal() models.Deal {
	return models.Deal{
		ID:          f.ID,
		Name:        f.Name,
		Value:       f.Value,
		Stage:       f.Stage,
		Probability: f.Probability,
		CloseDate:   f.CloseDate,
		Contact:     f.Contact,
		Company:     f.Company,
		Description: f.Description,
	}
}
