package scheduler

import "github.com/arnavshah/shift-roster-go/pkg/models"

// PreferenceStore holds each employee's ranked shift preferences in registration order
type PreferenceStore struct {
	order []string
	prefs map[string]models.Preferences
}

// NewPreferenceStore creates an empty store
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{prefs: make(map[string]models.Preferences)}
}

// Add registers an employee once. Later calls with the same name are ignored
// and report false. Days or shifts outside the canonical enumerations are dropped.
func (p *PreferenceStore) Add(name string, prefs models.Preferences) bool {
	if _, exists := p.prefs[name]; exists {
		return false
	}
	clean := make(models.Preferences, len(prefs))
	for day, shifts := range prefs {
		if !day.Valid() {
			continue
		}
		ranked := make([]models.Shift, 0, len(shifts))
		for _, shift := range shifts {
			if shift.Valid() {
				ranked = append(ranked, shift)
			}
		}
		clean[day] = ranked
	}
	p.order = append(p.order, name)
	p.prefs[name] = clean
	return true
}

// Employees returns names in registration order
func (p *PreferenceStore) Employees() []string {
	return p.order
}

// For returns the preferences registered for name
func (p *PreferenceStore) For(name string) models.Preferences {
	return p.prefs[name]
}

// Has reports whether name is registered
func (p *PreferenceStore) Has(name string) bool {
	_, ok := p.prefs[name]
	return ok
}

// Len returns the number of registered employees
func (p *PreferenceStore) Len() int {
	return len(p.order)
}
