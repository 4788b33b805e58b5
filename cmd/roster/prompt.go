package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/validation"
)

var ranks = [models.ShiftCount]string{"1st", "2nd", "3rd"}

// prompter collects employee preferences from a terminal, asking again until
// each answer is usable
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) ask(format string, args ...any) (string, error) {
	p.printf(format, args...)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) askCount(question string, lo, hi int, rangeMsg string) (int, error) {
	for {
		answer, err := p.ask("%s", question)
		if err != nil {
			return 0, err
		}
		n, err := validation.ParseCount(answer, lo, hi)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, validation.ErrNotANumber):
			p.printf("Invalid input. Please enter a number.\n")
		default:
			p.printf("%s\n", rangeMsg)
		}
	}
}

func dayNames() string {
	names := make([]string, 0, models.DayCount)
	for _, d := range models.Days {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}

func shiftNames() string {
	names := make([]string, 0, models.ShiftCount)
	for _, s := range models.Shifts {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

// collect runs the whole questionnaire
func (p *prompter) collect() (*models.ScheduleInput, error) {
	p.printf("Employee Shift Scheduling System\n%s\n", strings.Repeat("=", 60))

	count, err := p.askCount("\nHow many employees to schedule? (3-10 recommended): ", 1, 0,
		"Please enter at least 1 employee.")
	if err != nil {
		return nil, err
	}

	input := &models.ScheduleInput{Employees: make([]models.EmployeeInput, 0, count)}
	for i := 0; i < count; i++ {
		p.printf("\n--- Employee %d ---\n", i+1)
		emp, err := p.employee()
		if err != nil {
			return nil, err
		}
		input.Employees = append(input.Employees, emp)
	}
	return input, nil
}

func (p *prompter) employee() (models.EmployeeInput, error) {
	var name string
	for {
		answer, err := p.ask("Enter employee name: ")
		if err != nil {
			return models.EmployeeInput{}, err
		}
		if name, err = validation.CheckName(answer); err == nil {
			break
		}
		p.printf("Name cannot be empty.\n")
	}

	p.printf("\nEnter shift preferences for %s\n", name)
	p.printf("Available days: %s\n", dayNames())
	p.printf("Available shifts: %s\n", shiftNames())
	p.printf("Rank up to %d shifts per day, best first. Leave a later choice blank to stop.\n", validation.MaxRankedShifts)

	days, err := p.askCount(fmt.Sprintf("How many days does %s want to work? (1-%d): ", name, validation.MaxRequestedDays),
		1, validation.MaxRequestedDays,
		fmt.Sprintf("Please enter a number between 1 and %d.", validation.MaxRequestedDays))
	if err != nil {
		return models.EmployeeInput{}, err
	}

	emp := models.EmployeeInput{Name: name, Preferences: make(map[string][]string, days)}
	chosen := make(map[models.Day]bool, days)
	for j := 0; j < days; j++ {
		day, err := p.day(j, chosen)
		if err != nil {
			return models.EmployeeInput{}, err
		}
		chosen[day] = true

		ranked, err := p.ranking(day)
		if err != nil {
			return models.EmployeeInput{}, err
		}
		emp.Preferences[day.String()] = ranked
	}
	return emp, nil
}

func (p *prompter) day(j int, chosen map[models.Day]bool) (models.Day, error) {
	for {
		answer, err := p.ask("  Day %d (e.g., Monday): ", j+1)
		if err != nil {
			return 0, err
		}
		day, err := models.ParseDay(answer)
		if err != nil {
			p.printf("Invalid day. Choose from: %s\n", dayNames())
			continue
		}
		if chosen[day] {
			p.printf("%s already entered. Choose a different day.\n", day)
			continue
		}
		return day, nil
	}
}

func (p *prompter) ranking(day models.Day) ([]string, error) {
	p.printf("    Enter your shift preferences for %s in priority order:\n", day)
	var ranked []string
	taken := make(map[models.Shift]bool, models.ShiftCount)
	for k, rank := range ranks {
		for {
			answer, err := p.ask("      %s choice (Morning/Afternoon/Evening): ", rank)
			if err != nil {
				return nil, err
			}
			if answer == "" && k > 0 {
				return ranked, nil
			}
			shift, err := models.ParseShift(answer)
			if err != nil {
				p.printf("      Invalid shift. Choose from: %s\n", shiftNames())
				continue
			}
			if taken[shift] {
				p.printf("      %s already chosen. Pick a different shift.\n", shift)
				continue
			}
			taken[shift] = true
			ranked = append(ranked, shift.String())
			break
		}
	}
	return ranked, nil
}
