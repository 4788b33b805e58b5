// Package render turns a finished roster into text, CSV, JSON, Excel and
// iCalendar documents.
package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

// Format names an output document type
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatICS  Format = "ics"
)

// Formats lists every supported format
var Formats = []Format{FormatText, FormatCSV, FormatJSON, FormatXLSX, FormatICS}

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts a format name in any letter case
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

const width = 80

// Text writes the weekly roster followed by the per-employee work summary
func Text(w io.Writer, roster models.Roster, workload map[string]int) error {
	var b strings.Builder
	banner := strings.Repeat("=", width)

	b.WriteString("\n" + banner + "\n")
	b.WriteString(center("EMPLOYEE SCHEDULE FOR THE WEEK") + "\n")
	b.WriteString(banner + "\n\n")

	for _, day := range models.Days {
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(day.String()))
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, shift := range models.Shifts {
			list := "No employees assigned"
			if employees := roster.Employees(day, shift); len(employees) > 0 {
				list = strings.Join(employees, ", ")
			}
			fmt.Fprintf(&b, "  %-12s : %s\n", shift, list)
		}
	}

	b.WriteString("\n" + banner + "\n")
	b.WriteString(center("EMPLOYEE WORK SUMMARY") + "\n")
	b.WriteString(banner + "\n\n")

	for _, entry := range models.SortedWorkload(workload) {
		fmt.Fprintf(&b, "  %-20s : %d days\n", entry.Employee, entry.Days)
	}
	b.WriteString("\n" + banner + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// CSV writes one day,shift,employee row per assignment in roster order
func CSV(w io.Writer, roster models.Roster) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"day", "shift", "employee"}); err != nil {
		return err
	}
	for _, day := range models.Days {
		for _, shift := range models.Shifts {
			for _, name := range roster.Employees(day, shift) {
				if err := writer.Write([]string{day.String(), shift.String(), name}); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// Document bundles everything a format may need
type Document struct {
	Roster    models.Roster
	Workload  map[string]int
	Response  *models.ScheduleResponse
	WeekStart time.Time
}

// Write renders doc in the requested format
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatText:
		return Text(w, doc.Roster, doc.Workload)
	case FormatCSV:
		return CSV(w, doc.Roster)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Response)
	case FormatXLSX:
		buf, err := XLSX(doc.Roster, doc.Workload)
		if err != nil {
			return err
		}
		_, err = buf.WriteTo(w)
		return err
	case FormatICS:
		_, err := io.WriteString(w, ICS(doc.Roster, doc.WeekStart))
		return err
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, f)
}
