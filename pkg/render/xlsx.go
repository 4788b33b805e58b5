package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

const (
	rosterSheet   = "Roster"
	workloadSheet = "Workload"
)

// XLSX builds a workbook with a day × shift roster sheet and a workload sheet
func XLSX(roster models.Roster, workload map[string]int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, fmt.Errorf("rename roster sheet: %w", err)
	}
	if _, err := f.NewSheet(workloadSheet); err != nil {
		return nil, fmt.Errorf("create workload sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// roster: one row per day, one column per shift
	f.SetColWidth(rosterSheet, "A", "A", 14)
	f.SetCellValue(rosterSheet, "A1", "Day")
	for i, shift := range models.Shifts {
		col := colName(i + 1)
		f.SetColWidth(rosterSheet, col, col, 28)
		f.SetCellValue(rosterSheet, cell(col, 1), shift.String())
	}
	f.SetCellStyle(rosterSheet, "A1", cell(colName(models.ShiftCount), 1), headerStyle)

	for r, day := range models.Days {
		row := r + 2
		f.SetCellValue(rosterSheet, cell("A", row), day.String())
		for i, shift := range models.Shifts {
			text := "-"
			if employees := roster.Employees(day, shift); len(employees) > 0 {
				text = strings.Join(employees, ", ")
			}
			f.SetCellValue(rosterSheet, cell(colName(i+1), row), text)
		}
	}

	f.SetColWidth(workloadSheet, "A", "A", 24)
	f.SetCellValue(workloadSheet, "A1", "Employee")
	f.SetCellValue(workloadSheet, "B1", "Days")
	f.SetCellStyle(workloadSheet, "A1", "B1", headerStyle)
	for r, entry := range models.SortedWorkload(workload) {
		row := r + 2
		f.SetCellValue(workloadSheet, cell("A", row), entry.Employee)
		f.SetCellValue(workloadSheet, cell("B", row), entry.Days)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
