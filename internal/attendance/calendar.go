package attendance

import "time"

// FormatDate renders a date key as zero-padded YYYY-MM-DD in the time's
// own location. Going through UTC here would shift evening check-ins to
// the next day for timezones east of it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekDates returns Monday through Friday of the reference date's
// calendar week, in ascending order. A Sunday reference belongs to the
// week that ended the day before.
func WeekDates(ref time.Time) []string {
	weekday := int(ref.Weekday()) // Sunday == 0
	back := 6
	if weekday != 0 {
		back = (weekday - 1 + 7) % 7
	}
	monday := ref.AddDate(0, 0, -back)

	dates := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		dates = append(dates, FormatDate(monday.AddDate(0, 0, i)))
	}
	return dates
}

// MonthDates returns every day 1..N of the reference date's month.
func MonthDates(ref time.Time) []string {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	n := first.AddDate(0, 1, -1).Day()

	dates := make([]string, 0, n)
	for day := 1; day <= n; day++ {
		dates = append(dates, FormatDate(time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())))
	}
	return dates
}

// NextWeek and PrevWeek move the reference date by seven days.
func NextWeek(ref time.Time) time.Time { return ref.AddDate(0, 0, 7) }
func PrevWeek(ref time.Time) time.Time { return ref.AddDate(0, 0, -7) }

// NextMonth and PrevMonth move the reference date by one month.
func NextMonth(ref time.Time) time.Time { return ref.AddDate(0, 1, 0) }
func PrevMonth(ref time.Time) time.Time { return ref.AddDate(0, -1, 0) }
