package attendance

import (
	"context"
	"database/sql"
	"time"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts or overwrites the record for (student, date). The
// conflict target is the unique constraint, so concurrent writes for
// the same key cannot produce duplicate rows.
func (r *Repository) Upsert(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance (student_id, date, status, memo)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, date)
		DO UPDATE SET status = EXCLUDED.status, memo = EXCLUDED.memo, created_at = CURRENT_TIMESTAMP
	`, rec.StudentID, rec.Date, rec.Status, rec.Memo)
	return err
}

// UpsertStatus overwrites only the status for (student, date), leaving
// any memo in place. Used by the kiosk path.
func (r *Repository) UpsertStatus(ctx context.Context, studentID, date, status string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance (student_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, date)
		DO UPDATE SET status = EXCLUDED.status, created_at = CURRENT_TIMESTAMP
	`, studentID, date, status)
	return err
}

// ListByDate returns the records for one date joined with each
// student's class name.
func (r *Repository) ListByDate(ctx context.Context, date string) ([]DayEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.student_id, a.status, COALESCE(a.memo, ''), COALESCE(s.class_name, '')
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.date = $1::date
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []DayEntry
	for rows.Next() {
		var e DayEntry
		if err := rows.Scan(&e.StudentID, &e.Status, &e.Memo, &e.ClassName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListAll returns every stored record, for the week and month views.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	return r.list(ctx, `SELECT student_id, date, status, COALESCE(memo, ''), created_at FROM attendance`)
}

// ListRange returns records with from <= date <= to.
func (r *Repository) ListRange(ctx context.Context, from, to string) ([]Record, error) {
	return r.list(ctx, `
		SELECT student_id, date, status, COALESCE(memo, ''), created_at
		FROM attendance
		WHERE date >= $1::date AND date <= $2::date
	`, from, to)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var date time.Time
		if err := rows.Scan(&rec.StudentID, &date, &rec.Status, &rec.Memo, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Date = date.Format("2006-01-02")
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
