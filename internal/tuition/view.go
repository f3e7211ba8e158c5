package tuition

import (
	"strconv"

	"hagwon/internal/attendance"
	"hagwon/internal/roster"
)

// Key builds the composite lookup key for the year grid.
func Key(studentID string, month int) string {
	return studentID + "-" + strconv.Itoa(month)
}

// RecordMap projects a year's records into a disposable lookup keyed by
// "{studentId}-{month}".
func RecordMap(recs []Record) map[string]Record {
	m := make(map[string]Record, len(recs))
	for _, rec := range recs {
		m[Key(rec.StudentID, rec.Month)] = rec
	}
	return m
}

// Grid is a students × 12-month projection of one year's tuition state.
type Grid struct {
	Year int       `json:"year"`
	Rows []GridRow `json:"rows"`
}

// GridRow is one student's months; Months[0] is January. A month with
// no record is a zero Record with empty status, rendered as unpaid.
type GridRow struct {
	StudentID string   `json:"student_id"`
	Name      string   `json:"name"`
	ClassName string   `json:"class_name"`
	Months    []Record `json:"months"`
}

// BuildGrid assembles the student × month view for one year.
func BuildGrid(students []roster.Student, recs []Record, year int, class string) Grid {
	records := RecordMap(recs)
	students = attendance.FilterByClass(students, class)

	grid := Grid{Year: year, Rows: make([]GridRow, 0, len(students))}
	for _, s := range students {
		row := GridRow{StudentID: s.ID, Name: s.Name, ClassName: s.ClassName, Months: make([]Record, 12)}
		for m := 1; m <= 12; m++ {
			row.Months[m-1] = records[Key(s.ID, m)]
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}
