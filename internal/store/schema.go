package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		parent_phone VARCHAR(50) NOT NULL,
		passcode VARCHAR(10),
		memo TEXT,
		class_name VARCHAR(100),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS classes (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
		student_id UUID REFERENCES students(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		status VARCHAR(20) NOT NULL,
		memo TEXT DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(student_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS tuition_records (
		id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
		student_id UUID REFERENCES students(id) ON DELETE CASCADE,
		year INT NOT NULL,
		month INT NOT NULL,
		status VARCHAR(20) NOT NULL,
		payment_date DATE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(student_id, year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS message_templates (
		id SERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate creates all tables if they do not exist yet. Safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var (
	seedLastNames  = []string{"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임"}
	seedFirstNames = []string{"민수", "지원", "서연", "도윤", "하은", "준호", "지우", "예준", "서현", "민재", "수진", "현우", "지민", "가은"}
	seedClasses    = []string{"월수금반", "화목토반", "초등A반", "중등B반"}
)

// SeedDummy inserts n synthetic students for demos and local development.
func SeedDummy(ctx context.Context, db *sql.DB, n int) error {
	if n <= 0 {
		n = 20
	}
	for i := 0; i < n; i++ {
		name := seedLastNames[rand.Intn(len(seedLastNames))] + seedFirstNames[rand.Intn(len(seedFirstNames))]
		phone := fmt.Sprintf("010-%04d-%04d", rand.Intn(9000)+1000, rand.Intn(9000)+1000)
		passcode := fmt.Sprintf("%04d", rand.Intn(9000)+1000)
		class := seedClasses[rand.Intn(len(seedClasses))]

		_, err := db.ExecContext(ctx, `
			INSERT INTO students (name, parent_phone, passcode, memo, class_name)
			VALUES ($1, $2, $3, '테스트 데이터', $4)
		`, name, phone, passcode, class)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
