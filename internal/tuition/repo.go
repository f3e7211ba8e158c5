package tuition

import (
	"context"
	"database/sql"
)

// Repository persists tuition records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts or overwrites the record for (student, year, month)
// and returns the stored row.
func (r *Repository) Upsert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tuition_records (student_id, year, month, status, payment_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, year, month)
		DO UPDATE SET status = EXCLUDED.status, payment_date = EXCLUDED.payment_date, created_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, payment_date
	`, rec.StudentID, rec.Year, rec.Month, rec.Status, rec.PaymentDate)

	var paid sql.NullTime
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &paid); err != nil {
		return Record{}, err
	}
	rec.PaymentDate = formatDate(paid)
	return rec, nil
}

// ListByYear returns all records for one year.
func (r *Repository) ListByYear(ctx context.Context, year int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_id, year, month, status, payment_date, created_at
		FROM tuition_records
		WHERE year = $1
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var paid sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Year, &rec.Month, &rec.Status, &paid, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.PaymentDate = formatDate(paid)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func formatDate(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format("2006-01-02")
	return &s
}
