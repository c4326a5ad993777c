// ABOUTME: Example rows a session starts with, plus YAML fixture loading
// ABOUTME: Fixtures replace the defaults at startup and are never written back
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
	"gopkg.in/yaml.v3"
)

// Default returns the built-in sample contacts, deals, and tasks.
func Default() store.Seed {
	return store.Seed{
		Contacts: []models.Contact{
			{ID: 1, Name: "Alice Johnson", Email: "alice.johnson@acme.com", Phone: "+1 (555) 123-4567", Company: "Acme Corp", Position: "VP of Sales", Location: "New York, NY", Status: models.StatusActive},
			{ID: 2, Name: "Bob Smith", Email: "bob.smith@techstart.io", Phone: "+1 (555) 987-6543", Company: "TechStart", Position: "CTO", Location: "San Francisco, CA", Status: models.StatusProspect},
			{ID: 3, Name: "Carol Williams", Email: "carol@globalsys.com", Phone: "+1 (555) 456-7890", Company: "Global Systems", Position: "Project Manager", Location: "Chicago, IL", Status: models.StatusActive},
			{ID: 4, Name: "David Brown", Email: "david.brown@innovlabs.com", Phone: "+1 (555) 321-0987", Company: "Innovation Labs", Position: "Head of Operations", Location: "Austin, TX", Status: models.StatusInactive},
		},
		Deals: []models.Deal{
			{ID: 1, Name: "Acme Corp Integration", Value: 45000, Stage: models.StageNegotiation, Probability: 75, CloseDate: models.MustParseDate("2025-02-15"), Contact: "Alice Johnson", Company: "Acme Corp", Description: "Complete software integration project"},
			{ID: 2, Name: "TechStart Platform License", Value: 32500, Stage: models.StageProposal, Probability: 60, CloseDate: models.MustParseDate("2025-02-28"), Contact: "Bob Smith", Company: "TechStart", Description: "Annual platform licensing deal"},
			{ID: 3, Name: "Global Systems Upgrade", Value: 78900, Stage: models.StageQualified, Probability: 40, CloseDate: models.MustParseDate("2025-03-15"), Contact: "Carol Williams", Company: "Global Systems", Description: "System upgrade and migration services"},
			{ID: 4, Name: "Innovation Labs Consulting", Value: 25600, Stage: models.StageNegotiation, Probability: 85, CloseDate: models.MustParseDate("2025-01-30"), Contact: "David Brown", Company: "Innovation Labs", Description: "Strategic consulting engagement"},
		},
		Tasks: []models.Task{
			{ID: 1, Title: "Follow up with Acme Corp", Description: "Call Alice Johnson to discuss the integration project timeline", DueDate: models.MustParseDate("2025-01-16"), Priority: models.PriorityHigh, Status: models.TaskPending, Assignee: "John Doe", RelatedContact: models.StringPtr("Alice Johnson"), RelatedDeal: models.StringPtr("Acme Corp Integration")},
			{ID: 2, Title: "Prepare proposal for TechStart", Description: "Create detailed proposal document for platform licensing", DueDate: models.MustParseDate("2025-01-17"), Priority: models.PriorityMedium, Status: models.TaskInProgress, Assignee: "Jane Smith", RelatedContact: models.StringPtr("Bob Smith"), RelatedDeal: models.StringPtr("TechStart Platform License")},
			{ID: 3, Title: "Schedule demo for Global Systems", Description: "Coordinate with Carol Williams for system demonstration", DueDate: models.MustParseDate("2025-01-18"), Priority: models.PriorityHigh, Status: models.TaskPending, Assignee: "Mike Johnson", RelatedContact: models.StringPtr("Carol Williams"), RelatedDeal: models.StringPtr("Global Systems Upgrade")},
			{ID: 4, Title: "Send contract to Innovation Labs", Description: "Finalize and send the consulting agreement", DueDate: models.MustParseDate("2025-01-19"), Priority: models.PriorityLow, Status: models.TaskCompleted, Assignee: "Sarah Davis", RelatedContact: models.StringPtr("David Brown"), RelatedDeal: models.StringPtr("Innovation Labs Consulting")},
		},
	}
}

// LoadFile reads a YAML fixture with top-level contacts, deals, and tasks lists.
func LoadFile(path string) (store.Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture. Rows without an id get one after the highest id
// in their list and missing enums get the form defaults. Repeated or negative ids,
// negative deal values, and unknown enum values fail.
func Parse(data []byte) (store.Seed, error) {
	var s store.Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return store.Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	if err := normalize(&s); err != nil {
		return store.Seed{}, err
	}
	return s, nil
}

func normalize(s *store.Seed) error {
	var errs []error
	errs = append(errs, checkIDs("contact", s.Contacts, func(c *models.Contact) *int { return &c.ID }))
	errs = append(errs, checkIDs("deal", s.Deals, func(d *models.Deal) *int { return &d.ID }))
	errs = append(errs, checkIDs("task", s.Tasks, func(t *models.Task) *int { return &t.ID }))
	if err := errors.Join(errs...); err != nil {
		return err
	}

	for i := range s.Contacts {
		c := &s.Contacts[i]
		if c.Status == "" {
			c.Status = models.StatusProspect
		}
		if !c.Status.Valid() {
			errs = append(errs, fmt.Errorf("contact %d: unknown status %q", c.ID, c.Status))
		}
	}
	for i := range s.Deals {
		d := &s.Deals[i]
		if d.Stage == "" {
			d.Stage = models.StageLead
		}
		if !d.Stage.Valid() {
			errs = append(errs, fmt.Errorf("deal %d: unknown stage %q", d.ID, d.Stage))
		}
		if d.Value < 0 {
			errs = append(errs, fmt.Errorf("deal %d: negative value %v", d.ID, d.Value))
		}
		if d.Probability < 0 || d.Probability > 100 {
			errs = append(errs, fmt.Errorf("deal %d: probability %d outside 0-100", d.ID, d.Probability))
		}
	}
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		}
		if t.Status == "" {
			t.Status = models.TaskPending
		}
		if !t.Priority.Valid() {
			errs = append(errs, fmt.Errorf("task %d: unknown priority %q", t.ID, t.Priority))
		}
		if !t.Status.Valid() {
			errs = append(errs, fmt.Errorf("task %d: unknown status %q", t.ID, t.Status))
		}
	}
	return errors.Join(errs...)
}

// checkIDs rejects negative and repeated ids, then numbers the rows that
// have none.
func checkIDs[T any](kind string, items []T, idOf func(*T) *int) error {
	var errs []error
	seen := make(map[int]bool, len(items))
	for i := range items {
		id := *idOf(&items[i])
		switch {
		case id < 0:
			errs = append(errs, fmt.Errorf("%s %d: negative id", kind, id))
		case id > 0 && seen[id]:
			errs = append(errs, fmt.Errorf("%s %d: duplicate id", kind, id))
		}
		seen[id] = true
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	assignIDs(items, idOf)
	return nil
}

func assignIDs[T any](items []T, idOf func(*T) *int) {
	next := 0
	for i := range items {
		if id := *idOf(&items[i]); id > next {
			next = id
		}
	}
	for i := range items {
		if p := idOf(&items[i]); *p == 0 {
			next++
			*p = next
		}
	}
}
