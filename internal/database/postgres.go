// Package database provides the PostgreSQL connection and the repository
// the handlers read from and write to.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool and verifies reachability.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	slog.Info("Database SSL mode", "sslmode", extractSSLMode(databaseURL))

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connected", "min_conns", poolCfg.MinConns, "max_conns", poolCfg.MaxConns)
	return pool, nil
}

func extractSSLMode(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "unknown"
	}
	mode := strings.ToLower(u.Query().Get("sslmode"))
	if mode == "" {
		return "prefer (default)"
	}
	return mode
}

// questionTexts is the fixed five-item rubric, seeded once on an empty table.
var questionTexts = []string{
	"Dominio y manejo del tema del curso.",
	"Claridad en la exposición de los conceptos.",
	"Fomento de la participación y resolución de dudas.",
	"Calidad de los materiales y recursos de apoyo.",
	"Puntualidad y cumplimiento del programa del curso.",
}

// RunMigrations creates the schema and seeds the fixed questions.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS instructors (
			id SERIAL PRIMARY KEY,
			full_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			seminar TEXT,
			instructor_id INT NOT NULL REFERENCES instructors(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_instructor_id ON courses(instructor_id)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id SERIAL PRIMARY KEY,
			text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			id SERIAL PRIMARY KEY,
			course_id INT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			comments TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_course_id ON evaluations(course_id)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id SERIAL PRIMARY KEY,
			evaluation_id INT NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
			question_id INT NOT NULL REFERENCES questions(id),
			score INT NOT NULL CHECK (score BETWEEN 1 AND 5)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_evaluation_id ON answers(evaluation_id)`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	for _, text := range questionTexts {
		_, err := pool.Exec(ctx, `
			INSERT INTO questions (text)
			SELECT $1
			WHERE NOT EXISTS (SELECT 1 FROM questions WHERE text = $1)
		`, text)
		if err != nil {
			return fmt.Errorf("failed to seed questions: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
