package config

// Section is one pane of the settings screen.
type Section string

const (
	SectionProfile       Section = "profile"
	SectionNotifications Section = "notifications"
	SectionSecurity      Section = "security"
	SectionPreferences   Section = "preferences"
)

// AllSections lists settings panes in display order.
func AllSections() []Section {
	return []Section{SectionProfile, SectionNotifications, SectionSecurity, SectionPreferences}
}

// Field is one labelled line in a settings pane.
type Field struct {
	Label string
	Value string
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Fields returns the displayed rows of section.
func (s *Settings) Fields(section Section) []Field {
	switch section {
	case SectionProfile:
		p := s.Profile
		return []Field{
			{"Name", p.Name},
			{"Email", p.Email},
			{"Phone", p.Phone},
			{"Title", p.Title},
			{"Company", p.Company},
			{"Timezone", p.Timezone},
		}
	case SectionNotifications:
		n := s.Notifications
		return []Field{
			{"Email notifications", onOff(n.Email)},
			{"Task reminders", onOff(n.TaskReminders)},
			{"Deal updates", onOff(n.DealUpdates)},
			{"Weekly reports", onOff(n.WeeklyReports)},
			{"Browser notifications", onOff(n.Browser)},
		}
	case SectionSecurity:
		sec := s.Security
		return []Field{
			{"Two-factor auth", onOff(sec.TwoFactor)},
			{"Session timeout (min)", sec.SessionTimeout},
			{"Password expiry (days)", sec.PasswordExpiry},
		}
	case SectionPreferences:
		p := s.Preferences
		return []Field{
			{"Theme", p.Theme},
			{"Language", p.Language},
			{"Date format", p.DateFormat},
			{"Currency", p.Currency},
			{"Items per page", p.ItemsPerPage},
		}
	}
	return nil
}

// Toggle flips the boolean at row index of section and reports whether anything changed.
func (s *Settings) Toggle(section Section, row int) bool {
	var target *bool
	switch section {
	case SectionNotifications:
		fields := []*bool{
			&s.Notifications.Email,
			&s.Notifications.TaskReminders,
			&s.Notifications.DealUpdates,
			&s.Notifications.WeeklyReports,
			&s.Notifications.Browser,
		}
		if row >= 0 && row < len(fields) {
			target = fields[row]
		}
	case SectionSecurity:
		if row == 0 {
			target = &s.Security.TwoFactor
		}
	}
	if target == nil {
		return false
	}
	*target = !*target
	return true
}

// Set replaces the text value at row index of section and reports whether the
// row holds text. Boolean rows go through Toggle instead.
func (s *Settings) Set(section Section, row int, value string) bool {
	var fields []*string
	switch section {
	case SectionProfile:
		p := &s.Profile
		fields = []*string{&p.Name, &p.Email, &p.Phone, &p.Title, &p.Company, &p.Timezone}
	case SectionSecurity:
		fields = []*string{nil, &s.Security.SessionTimeout, &s.Security.PasswordExpiry}
	case SectionPreferences:
		p := &s.Preferences
		fields = []*string{&p.Theme, &p.Language, &p.DateFormat, &p.Currency, &p.ItemsPerPage}
	}
	if row < 0 || row >= len(fields) || fields[row] == nil {
		return false
	}
	*fields[row] = value
	return true
}
