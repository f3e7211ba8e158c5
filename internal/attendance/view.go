package attendance

import (
	"math"

	"hagwon/internal/roster"
)

// Key builds the composite lookup key used by the grid views.
func Key(studentID, date string) string {
	return studentID + "-" + date
}

// Cell is a grid cell's stored state; empty status means no record.
type Cell struct {
	Status string `json:"status"`
	Memo   string `json:"memo"`
}

// StatusMap projects records into a disposable lookup keyed by
// "{studentId}-{date}". It is rebuilt on every fetch, never stored.
func StatusMap(recs []Record) map[string]Cell {
	m := make(map[string]Cell, len(recs))
	for _, rec := range recs {
		m[Key(rec.StudentID, rec.Date)] = Cell{Status: rec.Status, Memo: rec.Memo}
	}
	return m
}

// FilterByClass narrows students to one class; "all" or "" bypasses.
func FilterByClass(students []roster.Student, class string) []roster.Student {
	if class == "" || class == "all" {
		return students
	}
	var out []roster.Student
	for _, s := range students {
		if s.ClassName == class {
			out = append(out, s)
		}
	}
	return out
}

// Grid is a students × dates projection of attendance state.
type Grid struct {
	Dates []string  `json:"dates"`
	Rows  []GridRow `json:"rows"`
}

// GridRow is one student's cells, aligned with Grid.Dates.
type GridRow struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Cells     []Cell `json:"cells"`
}

// BuildGrid assembles the week or month view for the given dates.
func BuildGrid(students []roster.Student, recs []Record, dates []string, class string) Grid {
	statuses := StatusMap(recs)
	students = FilterByClass(students, class)

	grid := Grid{Dates: dates, Rows: make([]GridRow, 0, len(students))}
	for _, s := range students {
		row := GridRow{StudentID: s.ID, Name: s.Name, ClassName: s.ClassName, Cells: make([]Cell, len(dates))}
		for i, d := range dates {
			row.Cells[i] = statuses[Key(s.ID, d)]
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// MonthlyStat is one student's tallies for a month. Early leaves count
// toward present; the rate is over recorded days only.
type MonthlyStat struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Present   int    `json:"present"`
	Late      int    `json:"late"`
	Absent    int    `json:"absent"`
	Days      int    `json:"days"`
	Rate      int    `json:"rate"`
}

// MonthlyStats tallies the given records (already scoped to one month)
// per student.
func MonthlyStats(students []roster.Student, recs []Record) []MonthlyStat {
	byStudent := make(map[string]*MonthlyStat, len(students))
	stats := make([]MonthlyStat, 0, len(students))
	for _, s := range students {
		stats = append(stats, MonthlyStat{StudentID: s.ID, Name: s.Name})
	}
	for i := range stats {
		byStudent[stats[i].StudentID] = &stats[i]
	}

	for _, rec := range recs {
		st, ok := byStudent[rec.StudentID]
		if !ok {
			continue
		}
		switch rec.Status {
		case StatusPresent, StatusEarlyLeave:
			st.Present++
		case StatusLate:
			st.Late++
		case StatusAbsent:
			st.Absent++
		}
	}

	for i := range stats {
		st := &stats[i]
		st.Days = st.Present + st.Late + st.Absent
		if st.Days > 0 {
			st.Rate = int(math.Round(float64(st.Present+st.Late) / float64(st.Days) * 100))
		}
	}
	return stats
}
