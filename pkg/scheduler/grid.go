package scheduler

import (
	"slices"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

// Grid is the mutable day × shift matrix filled by the assignment passes
type Grid struct {
	cells [models.DayCount][models.ShiftCount][]string
}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{}
}

// Len returns how many employees are in a cell
func (g *Grid) Len(day models.Day, shift models.Shift) int {
	return len(g.cells[day][shift])
}

// Contains reports whether name is already in the cell
func (g *Grid) Contains(day models.Day, shift models.Shift, name string) bool {
	return slices.Contains(g.cells[day][shift], name)
}

// ScheduledOn reports whether name works any shift on day
func (g *Grid) ScheduledOn(day models.Day, name string) bool {
	for _, shift := range models.Shifts {
		if g.Contains(day, shift, name) {
			return true
		}
	}
	return false
}

// Append adds name to the end of the cell. Callers enforce day-exclusivity.
func (g *Grid) Append(day models.Day, shift models.Shift, name string) {
	g.cells[day][shift] = append(g.cells[day][shift], name)
}

// ScheduledDays returns the days name works, in weekly order
func (g *Grid) ScheduledDays(name string) []models.Day {
	var days []models.Day
	for _, day := range models.Days {
		if g.ScheduledOn(day, name) {
			days = append(days, day)
		}
	}
	return days
}

// Roster returns a deep copy of the grid
func (g *Grid) Roster() models.Roster {
	var r models.Roster
	for _, day := range models.Days {
		for _, shift := range models.Shifts {
			if cell := g.cells[day][shift]; len(cell) > 0 {
				r[day][shift] = append([]string(nil), cell...)
			}
		}
	}
	return r
}
