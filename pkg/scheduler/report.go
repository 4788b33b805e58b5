package scheduler

import (
	"math"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

const (
	reasonCapReached = "weekly day cap reached"
	reasonNoShifts   = "no shift ranked for this day"
)

// Report lists understaffed cells and unmet preferred days for the current roster
func (s *Scheduler) Report() models.Report {
	return models.Report{
		Understaffed:  s.Understaffed(),
		Unmet:         s.Unmet(),
		FairnessScore: s.FairnessScore(),
	}
}

// Response packages the current roster, workload and report for clients
func (s *Scheduler) Response(runID string, warnings []string) models.ScheduleResponse {
	report := s.Report()
	return models.ScheduleResponse{
		RunID:         runID,
		Schedule:      s.Schedule().Entries(),
		Workload:      models.SortedWorkload(s.Workload()),
		Understaffed:  report.Understaffed,
		Unmet:         report.Unmet,
		FairnessScore: report.FairnessScore,
		Warnings:      warnings,
	}
}

// Understaffed returns the cells below the minimum headcount, in weekly order
func (s *Scheduler) Understaffed() []models.CoverageGap {
	gaps := []models.CoverageGap{}
	for _, day := range models.Days {
		for _, shift := range models.Shifts {
			if n := s.grid.Len(day, shift); n < s.opts.MinEmployeesPerShift {
				gaps = append(gaps, models.CoverageGap{
					Day:      day,
					Shift:    shift,
					Assigned: n,
					Required: s.opts.MinEmployeesPerShift,
				})
			}
		}
	}
	return gaps
}

// Unmet returns every requested day an employee is not working, in registration then weekly order
func (s *Scheduler) Unmet() []models.UnmetPreference {
	unmet := []models.UnmetPreference{}
	for _, name := range s.prefs.Employees() {
		prefs := s.prefs.For(name)
		for _, day := range s.missingDays(name, prefs) {
			reason := reasonCapReached
			if len(prefs[day]) == 0 {
				reason = reasonNoShifts
			}
			unmet = append(unmet, models.UnmetPreference{
				Employee: name,
				Day:      day,
				Shifts:   append([]models.Shift(nil), prefs[day]...),
				Reason:   reason,
			})
		}
	}
	return unmet
}

// FairnessScore returns a percentage (0-100) representing how evenly
// days are distributed. 100% is perfectly fair (Standard Deviation = 0).
func (s *Scheduler) FairnessScore() float64 {
	employees := s.prefs.Employees()
	if len(employees) == 0 {
		return 100.0
	}

	var sum float64
	for _, name := range employees {
		sum += float64(s.workload.Count(name))
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(employees))

	var varianceSum float64
	for _, name := range employees {
		diff := float64(s.workload.Count(name)) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(employees)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
