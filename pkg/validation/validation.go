// Package validation checks client-supplied preferences before they reach the
// scheduler and converts them into canonical days and shifts.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

const (
	// MaxRequestedDays is the most days an employee may ask for
	MaxRequestedDays = 5
	// MaxRankedShifts is the most shifts an employee may rank for one day
	MaxRankedShifts = models.ShiftCount
)

var (
	ErrInvalidInput = errors.New("invalid schedule input")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrNotANumber   = errors.New("please enter a number")
	ErrOutOfRange   = errors.New("number out of range")
)

// Result is the outcome of validating a schedule input
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Stats    Stats    `json:"stats"`
}

// Stats summarises the submitted input
type Stats struct {
	EmployeeCount  int `json:"employee_count"`
	RequestedDays  int `json:"requested_days"`
	CurrentAssigns int `json:"current_assignments"`
}

// Registration is a validated employee ready for the scheduler
type Registration struct {
	Name        string
	Preferences models.Preferences
}

// Plan is validated input in submission order
type Plan struct {
	Registrations []Registration
	Prefill       []models.Assignment
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDay(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("shift", func(fl validator.FieldLevel) bool {
		_, err := models.ParseShift(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the structure and vocabulary of a schedule input
func Validate(input *models.ScheduleInput) Result {
	res := Result{Stats: Stats{
		EmployeeCount:  len(input.Employees),
		CurrentAssigns: len(input.CurrentAssignments),
	}}

	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			res.Errors = append(res.Errors, err.Error())
		}
		for _, fe := range fieldErrs {
			res.Errors = append(res.Errors, describe(fe))
		}
	}

	seen := make(map[string]int, len(input.Employees))
	for i, emp := range input.Employees {
		res.Stats.RequestedDays += len(emp.Preferences)
		res.Errors = append(res.Errors, canonicalClashes(i, emp)...)

		name := strings.TrimSpace(emp.Name)
		if name == "" {
			continue
		}
		if first, dup := seen[name]; dup {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("employees[%d]: duplicate employee %q ignored, employees[%d] is kept", i, name, first))
			continue
		}
		seen[name] = i
	}

	for i, a := range input.CurrentAssignments {
		if name := strings.TrimSpace(a.Employee); name != "" {
			if _, ok := seen[name]; !ok {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("current_assignments[%d]: unknown employee %q ignored", i, name))
			}
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// Build validates input and converts it into scheduler registrations
func Build(input *models.ScheduleInput) (*Plan, Result, error) {
	res := Validate(input)
	if !res.Valid {
		return nil, res, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(res.Errors, "; "))
	}

	plan := &Plan{Registrations: make([]Registration, 0, len(input.Employees))}
	for _, emp := range input.Employees {
		prefs := make(models.Preferences, len(emp.Preferences))
		for dayName, shiftNames := range emp.Preferences {
			day, _ := models.ParseDay(dayName)
			ranked := make([]models.Shift, 0, len(shiftNames))
			for _, shiftName := range shiftNames {
				shift, _ := models.ParseShift(shiftName)
				ranked = append(ranked, shift)
			}
			prefs[day] = ranked
		}
		plan.Registrations = append(plan.Registrations, Registration{
			Name:        strings.TrimSpace(emp.Name),
			Preferences: prefs,
		})
	}
	for _, a := range input.CurrentAssignments {
		day, _ := models.ParseDay(a.Day)
		shift, _ := models.ParseShift(a.Shift)
		plan.Prefill = append(plan.Prefill, models.Assignment{
			Employee: strings.TrimSpace(a.Employee),
			Day:      day,
			Shift:    shift,
		})
	}
	return plan, res, nil
}

// canonicalClashes finds names that differ only in case or spacing
func canonicalClashes(i int, emp models.EmployeeInput) []string {
	var errs []string
	days := make(map[models.Day]string, len(emp.Preferences))
	for dayName, shiftNames := range emp.Preferences {
		day, err := models.ParseDay(dayName)
		if err != nil {
			continue
		}
		if other, dup := days[day]; dup {
			a, b := other, dayName
			if b < a {
				a, b = b, a
			}
			errs = append(errs, fmt.Sprintf("employees[%d].preferences: %q and %q are both %s", i, a, b, day))
		}
		days[day] = dayName

		shifts := make(map[models.Shift]bool, len(shiftNames))
		for _, shiftName := range shiftNames {
			shift, err := models.ParseShift(shiftName)
			if err != nil {
				continue
			}
			if shifts[shift] && !exactRepeat(shiftNames, shiftName) {
				errs = append(errs, fmt.Sprintf("employees[%d].preferences[%s]: %s is ranked more than once", i, dayName, shift))
			}
			shifts[shift] = true
		}
	}
	return errs
}

// exactRepeat reports whether value appears verbatim more than once; those
// are already reported by the unique tag.
func exactRepeat(values []string, value string) bool {
	n := 0
	for _, v := range values {
		if v == value {
			n++
		}
	}
	return n > 1
}

func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "nonblank":
		return fmt.Sprintf("%s: cannot be empty", path)
	case "day":
		return fmt.Sprintf("%s: invalid day %q", path, fe.Value())
	case "shift":
		return fmt.Sprintf("%s: invalid shift %q", path, fe.Value())
	case "unique":
		return fmt.Sprintf("%s: a shift may only be ranked once", path)
	case "min", "max":
		switch {
		case fe.Kind() == reflect.Map:
			return fmt.Sprintf("%s: between 1 and %d days must be requested", path, MaxRequestedDays)
		case fe.Field() == "employees":
			return fmt.Sprintf("%s: at least one employee is required", path)
		default:
			return fmt.Sprintf("%s: between 1 and %d shifts must be ranked", path, MaxRankedShifts)
		}
	}
	return fmt.Sprintf("%s: failed %s validation", path, fe.Tag())
}

// CheckName validates an employee name typed at a prompt
func CheckName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// ParseCount parses a whole number typed at a prompt and checks it lies in [lo, hi].
// hi <= 0 means no upper bound.
func ParseCount(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNotANumber
	}
	if n < lo || (hi > 0 && n > hi) {
		if hi > 0 {
			return 0, fmt.Errorf("%w: please enter a number between %d and %d", ErrOutOfRange, lo, hi)
		}
		return 0, fmt.Errorf("%w: please enter at least %d", ErrOutOfRange, lo)
	}
	return n, nil
}
