package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

func validInput() *models.ScheduleInput {
	return &models.ScheduleInput{
		Employees: []models.EmployeeInput{
			{Name: "Alice", Preferences: map[string][]string{
				"Monday":  {"Morning", "Afternoon"},
				"tuesday": {" evening "},
			}},
			{Name: "  Bob ", Preferences: map[string][]string{
				"Friday": {"Afternoon"},
			}},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(validInput())

	if !res.Valid {
		t.Fatalf("Expected input to be valid, got errors %v", res.Errors)
	}
	if res.Stats.EmployeeCount != 2 || res.Stats.RequestedDays != 3 {
		t.Errorf("Unexpected stats %+v", res.Stats)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", res.Warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *models.ScheduleInput)
		want   string
	}{
		{
			name:   "no employees",
			mutate: func(in *models.ScheduleInput) { in.Employees = nil },
			want:   "at least one employee is required",
		},
		{
			name:   "blank name",
			mutate: func(in *models.ScheduleInput) { in.Employees[0].Name = "   " },
			want:   "employees[0].name: cannot be empty",
		},
		{
			name: "unknown day",
			mutate: func(in *models.ScheduleInput) {
				in.Employees[1].Preferences["Funday"] = []string{"Morning"}
			},
			want: `invalid day "Funday"`,
		},
		{
			name: "unknown shift",
			mutate: func(in *models.ScheduleInput) {
				in.Employees[1].Preferences["Friday"] = []string{"Night"}
			},
			want: `invalid shift "Night"`,
		},
		{
			name: "too many days",
			mutate: func(in *models.ScheduleInput) {
				for _, d := range []string{"Wednesday", "Thursday", "Friday", "Saturday"} {
					in.Employees[0].Preferences[d] = []string{"Morning"}
				}
			},
			want: "between 1 and 5 days must be requested",
		},
		{
			name:   "no days",
			mutate: func(in *models.ScheduleInput) { in.Employees[1].Preferences = nil },
			want:   "between 1 and 5 days must be requested",
		},
		{
			name: "empty ranking",
			mutate: func(in *models.ScheduleInput) {
				in.Employees[1].Preferences["Friday"] = []string{}
			},
			want: "between 1 and 3 shifts must be ranked",
		},
		{
			name: "repeated shift",
			mutate: func(in *models.ScheduleInput) {
				in.Employees[1].Preferences["Friday"] = []string{"Morning", "Morning"}
			},
			want: "a shift may only be ranked once",
		},
		{
			name: "repeated shift in another case",
			mutate: func(in *models.ScheduleInput) {
				in.Employees[1].Preferences["Friday"] = []string{"Morning", "MORNING"}
			},
			want: "Morning is ranked more than once",
		},
		{
			name: "same day twice",
			mutate: func(in *models.ScheduleInput) {
				in.Employees[1].Preferences["friday"] = []string{"Morning"}
			},
			want: `"Friday" and "friday" are both Friday`,
		},
		{
			name: "bad prefill shift",
			mutate: func(in *models.ScheduleInput) {
				in.CurrentAssignments = []models.AssignmentInput{{Employee: "Alice", Day: "Monday", Shift: "Late"}}
			},
			want: `current_assignments[0].shift: invalid shift "Late"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			res := Validate(in)

			if res.Valid {
				t.Fatal("Expected input to be invalid")
			}
			joined := strings.Join(res.Errors, "\n")
			if !strings.Contains(joined, tt.want) {
				t.Errorf("Expected an error containing %q, got:\n%s", tt.want, joined)
			}
		})
	}
}

func TestValidate_DuplicateNamesWarn(t *testing.T) {
	in := validInput()
	in.Employees = append(in.Employees, models.EmployeeInput{
		Name:        "Alice",
		Preferences: map[string][]string{"Sunday": {"Evening"}},
	})
	in.CurrentAssignments = []models.AssignmentInput{{Employee: "Zoe", Day: "Monday", Shift: "Morning"}}

	res := Validate(in)

	if !res.Valid {
		t.Fatalf("Expected duplicates to be valid, got %v", res.Errors)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], `duplicate employee "Alice"`) {
		t.Errorf("Unexpected warning %q", res.Warnings[0])
	}
	if !strings.Contains(res.Warnings[1], `unknown employee "Zoe"`) {
		t.Errorf("Unexpected warning %q", res.Warnings[1])
	}
}

func TestBuild(t *testing.T) {
	in := validInput()
	in.CurrentAssignments = []models.AssignmentInput{{Employee: " Bob", Day: "friday", Shift: "evening"}}

	plan, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(plan.Registrations) != 2 {
		t.Fatalf("Expected 2 registrations, got %d", len(plan.Registrations))
	}
	alice := plan.Registrations[0]
	want := models.Preferences{
		models.Monday:  {models.Morning, models.Afternoon},
		models.Tuesday: {models.Evening},
	}
	if alice.Name != "Alice" || !reflect.DeepEqual(alice.Preferences, want) {
		t.Errorf("Unexpected registration %+v", alice)
	}
	if plan.Registrations[1].Name != "Bob" {
		t.Errorf("Expected trimmed name Bob, got %q", plan.Registrations[1].Name)
	}
	wantPrefill := []models.Assignment{{Employee: "Bob", Day: models.Friday, Shift: models.Evening}}
	if !reflect.DeepEqual(plan.Prefill, wantPrefill) {
		t.Errorf("Expected prefill %v, got %v", wantPrefill, plan.Prefill)
	}
}

func TestBuild_Invalid(t *testing.T) {
	in := validInput()
	in.Employees[0].Name = ""

	_, res, err := Build(in)

	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if res.Valid {
		t.Error("Expected result to be invalid")
	}
}

func TestParseCount(t *testing.T) {
	if n, err := ParseCount(" 3 ", 1, 5); err != nil || n != 3 {
		t.Errorf("Expected 3, got %d (%v)", n, err)
	}
	if _, err := ParseCount("three", 1, 5); !errors.Is(err, ErrNotANumber) {
		t.Errorf("Expected ErrNotANumber, got %v", err)
	}
	if _, err := ParseCount("6", 1, 5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if _, err := ParseCount("0", 1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for an unbounded count, got %v", err)
	}
	if n, err := ParseCount("40", 1, 0); err != nil || n != 40 {
		t.Errorf("Expected 40, got %d (%v)", n, err)
	}
}

func TestCheckName(t *testing.T) {
	if name, err := CheckName("  Dana "); err != nil || name != "Dana" {
		t.Errorf("Expected Dana, got %q (%v)", name, err)
	}
	if _, err := CheckName(" "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
}
