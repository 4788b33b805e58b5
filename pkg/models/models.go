package models

import "sort"

// Preferences maps a day to the shifts an employee wants that day, best first
type Preferences map[Day][]Shift

// Days returns the preferred days in weekly order
func (p Preferences) Days() []Day {
	var days []Day
	for _, d := range Days {
		if _, ok := p[d]; ok {
			days = append(days, d)
		}
	}
	return days
}

// Roster is a read-only copy of the weekly grid: day × shift → employees in assignment order
type Roster [DayCount][ShiftCount][]string

// Employees returns the employees working the given cell
func (r Roster) Employees(day Day, shift Shift) []string {
	return r[day][shift]
}

// Assignments counts every (employee, day) placement in the roster
func (r Roster) Assignments() int {
	n := 0
	for _, day := range Days {
		for _, shift := range Shifts {
			n += len(r[day][shift])
		}
	}
	return n
}

// Entries flattens the roster into an ordered, JSON-friendly structure
func (r Roster) Entries() []DayEntry {
	entries := make([]DayEntry, 0, DayCount)
	for _, day := range Days {
		entry := DayEntry{Day: day, Shifts: make([]ShiftEntry, 0, ShiftCount)}
		for _, shift := range Shifts {
			employees := r[day][shift]
			if employees == nil {
				employees = []string{}
			}
			entry.Shifts = append(entry.Shifts, ShiftEntry{Shift: shift, Employees: employees})
		}
		entries = append(entries, entry)
	}
	return entries
}

// DayEntry is one day of a rendered roster
type DayEntry struct {
	Day    Day          `json:"day"`
	Shifts []ShiftEntry `json:"shifts"`
}

// ShiftEntry is one cell of a rendered roster
type ShiftEntry struct {
	Shift     Shift    `json:"shift"`
	Employees []string `json:"employees"`
}

// WorkloadEntry is the number of days an employee was scheduled
type WorkloadEntry struct {
	Employee string `json:"employee"`
	Days     int    `json:"days"`
}

// SortedWorkload orders a workload summary by employee name
func SortedWorkload(workload map[string]int) []WorkloadEntry {
	out := make([]WorkloadEntry, 0, len(workload))
	for name, days := range workload {
		out = append(out, WorkloadEntry{Employee: name, Days: days})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Employee < out[j].Employee })
	return out
}

// CoverageGap represents a cell that finished below the minimum headcount
type CoverageGap struct {
	Day      Day   `json:"day"`
	Shift    Shift `json:"shift"`
	Assigned int   `json:"assigned"`
	Required int   `json:"required"`
}

// UnmetPreference represents a requested day the employee was not scheduled on
type UnmetPreference struct {
	Employee string  `json:"employee"`
	Day      Day     `json:"day"`
	Shifts   []Shift `json:"shifts"`
	Reason   string  `json:"reason"`
}

// Report summarises how well a finished run met its constraints
type Report struct {
	Understaffed  []CoverageGap     `json:"understaffed"`
	Unmet         []UnmetPreference `json:"unmet_preferences"`
	FairnessScore float64           `json:"fairness_score"`
}

// EmployeeInput is an employee as submitted by a client, before canonicalisation
type EmployeeInput struct {
	Name        string              `json:"name" yaml:"name" validate:"nonblank"`
	Preferences map[string][]string `json:"preferences" yaml:"preferences" validate:"min=1,max=5,dive,keys,day,endkeys,min=1,max=3,unique,dive,shift"`
}

// AssignmentInput is an existing placement submitted alongside the preferences
type AssignmentInput struct {
	Employee string `json:"employee" yaml:"employee" validate:"nonblank"`
	Day      string `json:"day" yaml:"day" validate:"day"`
	Shift    string `json:"shift" yaml:"shift" validate:"shift"`
}

// Assignment represents an employee-cell pairing
type Assignment struct {
	Employee string `json:"employee"`
	Day      Day    `json:"day"`
	Shift    Shift  `json:"shift"`
}

// ScheduleInput is the data structure for the scheduling endpoint
type ScheduleInput struct {
	Employees          []EmployeeInput   `json:"employees" yaml:"employees" validate:"min=1,dive"`
	CurrentAssignments []AssignmentInput `json:"current_assignments,omitempty" yaml:"current_assignments,omitempty" validate:"dive"`
	WeekStart          string            `json:"week_start,omitempty" yaml:"week_start,omitempty"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	RunID         string            `json:"run_id"`
	Schedule      []DayEntry        `json:"schedule"`
	Workload      []WorkloadEntry   `json:"workload"`
	Understaffed  []CoverageGap     `json:"understaffed"`
	Unmet         []UnmetPreference `json:"unmet_preferences"`
	FairnessScore float64           `json:"fairness_score"`
	Warnings      []string          `json:"warnings,omitempty"`
}
