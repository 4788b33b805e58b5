package scheduler

import (
	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

const (
	// DefaultMaxDaysPerWeek is the weekly cap on scheduled days per employee
	DefaultMaxDaysPerWeek = 5
	// DefaultMinEmployeesPerShift is the headcount the coverage pass tries to reach
	DefaultMinEmployeesPerShift = 2
)

// Options tunes the scheduling constraints
type Options struct {
	MaxDaysPerWeek       int
	MinEmployeesPerShift int
}

// DefaultOptions returns the standard 5-day cap and 2-person minimum
func DefaultOptions() Options {
	return Options{
		MaxDaysPerWeek:       DefaultMaxDaysPerWeek,
		MinEmployeesPerShift: DefaultMinEmployeesPerShift,
	}
}

// Scheduler handles the logic of assigning employees to shifts.
// It is not safe for concurrent use.
type Scheduler struct {
	prefs    *PreferenceStore
	grid     *Grid
	workload *Workload
	opts     Options
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance
func NewScheduler(opts Options, logger *zap.Logger) *Scheduler {
	if opts.MaxDaysPerWeek <= 0 {
		opts.MaxDaysPerWeek = DefaultMaxDaysPerWeek
	}
	if opts.MinEmployeesPerShift <= 0 {
		opts.MinEmployeesPerShift = DefaultMinEmployeesPerShift
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		prefs:    NewPreferenceStore(),
		grid:     NewGrid(),
		workload: NewWorkload(),
		opts:     opts,
		logger:   logger,
	}
}

// Register adds an employee with their ranked preferences. A name that is
// already registered is ignored and Register returns false.
func (s *Scheduler) Register(name string, prefs models.Preferences) bool {
	if !s.prefs.Add(name, prefs) {
		s.logger.Debug("duplicate registration ignored", zap.String("employee", name))
		return false
	}
	return true
}

// Prefill records an existing assignment before Run. It is skipped when the
// employee is unknown, already works that day, or is at the weekly cap.
func (s *Scheduler) Prefill(name string, day models.Day, shift models.Shift) bool {
	if !s.prefs.Has(name) || !day.Valid() || !shift.Valid() {
		return false
	}
	if s.atCap(name) || s.grid.ScheduledOn(day, name) {
		return false
	}
	s.assign(day, shift, name)
	return true
}

// Run executes the preferred, coverage and conflict-resolution passes in order
func (s *Scheduler) Run() {
	preferred := s.assignPreferred()
	coverage := s.ensureCoverage()
	resolved := s.resolveConflicts()

	s.logger.Debug("assignment complete",
		zap.Int("employees", s.prefs.Len()),
		zap.Int("preferred", preferred),
		zap.Int("coverage", coverage),
		zap.Int("resolved", resolved),
	)
}

// Schedule returns a copy of the current roster
func (s *Scheduler) Schedule() models.Roster {
	return s.grid.Roster()
}

// Workload returns the days scheduled for every registered employee
func (s *Scheduler) Workload() map[string]int {
	out := make(map[string]int, s.prefs.Len())
	for _, name := range s.prefs.Employees() {
		out[name] = s.workload.Count(name)
	}
	return out
}

func (s *Scheduler) atCap(name string) bool {
	return s.workload.Count(name) >= s.opts.MaxDaysPerWeek
}

func (s *Scheduler) assign(day models.Day, shift models.Shift, name string) {
	s.grid.Append(day, shift, name)
	s.workload.Increment(name)
}

// assignPreferred gives every employee their first-choice shift on each
// requested day, in registration order, until they hit the weekly cap.
// Shift occupancy is not checked here.
func (s *Scheduler) assignPreferred() int {
	added := 0
	for _, name := range s.prefs.Employees() {
		prefs := s.prefs.For(name)
		for _, day := range models.Days {
			if s.atCap(name) {
				break
			}
			shifts, ok := prefs[day]
			if !ok || s.grid.ScheduledOn(day, name) {
				continue
			}
			// an empty ranking ends this employee's pass
			if len(shifts) == 0 {
				break
			}
			s.assign(day, shifts[0], name)
			added++
		}
	}
	s.logger.Debug("preferred pass complete", zap.Int("assigned", added))
	return added
}

// ensureCoverage tops up every cell below the minimum headcount with the
// first eligible employee in registration order. Each iteration adds exactly
// one employee or gives up on the cell.
func (s *Scheduler) ensureCoverage() int {
	added := 0
	for _, day := range models.Days {
		for _, shift := range models.Shifts {
			for s.grid.Len(day, shift) < s.opts.MinEmployeesPerShift {
				name, ok := s.nextAvailable(day, shift)
				if !ok {
					s.logger.Debug("shift left understaffed",
						zap.Stringer("day", day),
						zap.Stringer("shift", shift),
						zap.Int("assigned", s.grid.Len(day, shift)),
					)
					break
				}
				s.assign(day, shift, name)
				added++
			}
		}
	}
	s.logger.Debug("coverage pass complete", zap.Int("assigned", added))
	return added
}

func (s *Scheduler) nextAvailable(day models.Day, shift models.Shift) (string, bool) {
	for _, name := range s.prefs.Employees() {
		if s.atCap(name) || s.grid.ScheduledOn(day, name) || s.grid.Contains(day, shift, name) {
			continue
		}
		return name, true
	}
	return "", false
}

// resolveConflicts retries requested days the employee is not yet working,
// walking the day's ranking (or every shift when no ranking exists) and
// taking the first cell the employee is not already in. Shift occupancy is
// not checked here.
func (s *Scheduler) resolveConflicts() int {
	added := 0
	for _, name := range s.prefs.Employees() {
		prefs := s.prefs.For(name)
		for _, day := range s.missingDays(name, prefs) {
			if s.atCap(name) {
				break
			}
			shifts, ok := prefs[day]
			if !ok {
				shifts = models.Shifts[:]
			}
			for _, shift := range shifts {
				if s.grid.Contains(day, shift, name) {
					continue
				}
				s.assign(day, shift, name)
				added++
				break
			}
		}
	}
	s.logger.Debug("conflict pass complete", zap.Int("assigned", added))
	return added
}

// missingDays returns the preferred days name is not scheduled on, in weekly order
func (s *Scheduler) missingDays(name string, prefs models.Preferences) []models.Day {
	var missing []models.Day
	for _, day := range prefs.Days() {
		if !s.grid.ScheduledOn(day, name) {
			missing = append(missing, day)
		}
	}
	return missing
}
