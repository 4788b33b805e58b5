package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/render"
)

var errMissingColumn = errors.New("missing column")

// columns maps a header row to column indexes and checks the required ones exist
func columns(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, name)
		}
	}
	return cols, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parsePreferencesCSV reads rows of name,day,first,second,third. Rows sharing a
// name belong to the same employee; employees keep the order they first appear in.
func parsePreferencesCSV(r io.Reader) ([]models.EmployeeInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read preferences header: %w", err)
	}
	cols, err := columns(header, "name", "day", "first")
	if err != nil {
		return nil, err
	}

	var employees []models.EmployeeInput
	index := make(map[string]int)
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("preferences row %d: %w", row, err)
		}

		name := field(record, cols, "name")
		day := field(record, cols, "day")
		var ranked []string
		for _, col := range []string{"first", "second", "third"} {
			if v := field(record, cols, col); v != "" {
				ranked = append(ranked, v)
			}
		}

		i, ok := index[name]
		if !ok {
			i = len(employees)
			index[name] = i
			employees = append(employees, models.EmployeeInput{Name: name, Preferences: map[string][]string{}})
		}
		if _, dup := employees[i].Preferences[day]; dup {
			return nil, fmt.Errorf("preferences row %d: %s already listed %s", row, name, day)
		}
		employees[i].Preferences[day] = ranked
	}
	return employees, nil
}

// parseAssignmentsCSV reads rows of employee,day,shift
func parseAssignmentsCSV(r io.Reader) ([]models.AssignmentInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read assignments header: %w", err)
	}
	cols, err := columns(header, "employee", "day", "shift")
	if err != nil {
		return nil, err
	}

	var assignments []models.AssignmentInput
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("assignments row %d: %w", row, err)
		}
		assignments = append(assignments, models.AssignmentInput{
			Employee: field(record, cols, "employee"),
			Day:      field(record, cols, "day"),
			Shift:    field(record, cols, "shift"),
		})
	}
	return assignments, nil
}

func openUpload(fh *multipart.FileHeader) (multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	return f, nil
}

// ScheduleCSV handles CSV file uploads for scheduling
func (h *Handler) ScheduleCSV(c *gin.Context) {
	prefsFile, _ := c.FormFile("preferences_file")
	assignmentsFile, _ := c.FormFile("assignments_file")

	if prefsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preferences_file is required"})
		return
	}

	f, err := openUpload(prefsFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open preferences file"})
		return
	}
	defer f.Close()

	var input models.ScheduleInput
	input.WeekStart = c.PostForm("week_start")
	if input.Employees, err = parsePreferencesCSV(f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if assignmentsFile != nil {
		af, err := openUpload(assignmentsFile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open assignments file"})
			return
		}
		defer af.Close()
		if input.CurrentAssignments, err = parseAssignmentsCSV(af); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	run, res, err := h.runSchedule(c, &input)
	if err != nil {
		invalidInput(c, res, err)
		return
	}

	var out strings.Builder
	if err := render.CSV(&out, run.roster); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render schedule"})
		return
	}

	h.RecordUsage(c, run.employees, run.roster.Assignments())
	c.JSON(http.StatusOK, gin.H{
		"csv":          out.String(),
		"run_id":       run.response.RunID,
		"understaffed": run.response.Understaffed,
		"warnings":     run.response.Warnings,
	})
}
