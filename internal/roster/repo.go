package roster

import (
	"context"
	"database/sql"
	"errors"

	"hagwon/internal/errs"
)

// Repository persists students and classes in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListStudents returns all students ordered by class then name.
func (r *Repository) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, parent_phone, COALESCE(passcode, ''), COALESCE(memo, ''), COALESCE(class_name, ''), created_at
		FROM students
		ORDER BY class_name ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.ParentPhone, &s.Passcode, &s.Memo, &s.ClassName, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// CreateStudent inserts a student and fills in the generated id.
func (r *Repository) CreateStudent(ctx context.Context, s Student) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (name, parent_phone, passcode, memo, class_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, s.Name, s.ParentPhone, s.Passcode, s.Memo, s.ClassName)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return Student{}, err
	}
	return s, nil
}

// UpdateStudent replaces all mutable fields of a student.
func (r *Repository) UpdateStudent(ctx context.Context, s Student) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE students
		SET name = $2, parent_phone = $3, passcode = $4, memo = $5, class_name = $6
		WHERE id = $1
		RETURNING created_at
	`, s.ID, s.Name, s.ParentPhone, s.Passcode, s.Memo, s.ClassName)
	if err := row.Scan(&s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, errs.ErrNotFound
		}
		return Student{}, err
	}
	return s, nil
}

// DeleteStudent removes a student; attendance and tuition rows cascade.
func (r *Repository) DeleteStudent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// GetStudent returns one student by id.
func (r *Repository) GetStudent(ctx context.Context, id string) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, parent_phone, COALESCE(passcode, ''), COALESCE(memo, ''), COALESCE(class_name, ''), created_at
		FROM students
		WHERE id = $1
	`, id)
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.ParentPhone, &s.Passcode, &s.Memo, &s.ClassName, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, errs.ErrNotFound
		}
		return Student{}, err
	}
	return s, nil
}

// FindStudentByPasscode returns the first student whose passcode matches,
// in insertion order. Duplicate passcodes resolve to the oldest student.
func (r *Repository) FindStudentByPasscode(ctx context.Context, passcode string) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, parent_phone, COALESCE(passcode, ''), COALESCE(memo, ''), COALESCE(class_name, ''), created_at
		FROM students
		WHERE passcode = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, passcode)
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.ParentPhone, &s.Passcode, &s.Memo, &s.ClassName, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, errs.ErrNotFound
		}
		return Student{}, err
	}
	return s, nil
}

// ListClasses returns all classes ordered by name.
func (r *Repository) ListClasses(ctx context.Context) ([]Class, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM classes ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []Class
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ClassExists reports whether a class with the given name is registered.
func (r *Repository) ClassExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes WHERE name = $1`, name).Scan(&count)
	return count > 0, err
}

// CreateClass inserts a class label.
func (r *Repository) CreateClass(ctx context.Context, name string) (Class, error) {
	var c Class
	c.Name = name
	row := r.db.QueryRowContext(ctx, `INSERT INTO classes (name) VALUES ($1) RETURNING id, created_at`, name)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return Class{}, err
	}
	return c, nil
}
