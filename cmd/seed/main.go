// Command seed loads the demo catalog: five instructors, their courses with
// seminar labels, and the fixed question rubric.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlessandroLop/evaluacion-api/internal/config"
	"github.com/AlessandroLop/evaluacion-api/internal/database"
	"github.com/AlessandroLop/evaluacion-api/internal/logging"
)

type seedCourse struct {
	name       string
	instructor string
	seminar    string
}

var seedInstructors = []string{
	"MARIO ROBERTO MENDEZ ROMERO",
	"OTTO RIGOBERTO ORTIZ PEREZ",
	"CARLOS AMILCAR TEZO PALENCIA",
	"OSCAR ALEJANDRO PAZ CAMPOS",
	"DANY OTONIEL OLIVA BELTETON",
}

var seedCourses = []seedCourse{
	{"programacion Basica", "MARIO ROBERTO MENDEZ ROMERO", "Seminario de Programación"},
	{"programacion avanzada", "DANY OTONIEL OLIVA BELTETON", "Seminario de Programación"},
	{"analisis de sistemas", "OTTO RIGOBERTO ORTIZ PEREZ", "Seminario de Sistemas"},
	{"desarrollo web", "CARLOS AMILCAR TEZO PALENCIA", "Seminario de Desarrollo"},
	{"base de datos", "OSCAR ALEJANDRO PAZ CAMPOS", "Seminario de Bases de Datos"},
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	instructorIDs := make(map[string]int)

	for _, name := range seedInstructors {
		var id int
		err := pool.QueryRow(ctx, `SELECT id FROM instructors WHERE full_name = $1`, name).Scan(&id)
		if err == nil {
			slog.Info("Instructor already present", "name", name, "id", id)
			instructorIDs[name] = id
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		err = pool.QueryRow(ctx, `INSERT INTO instructors (full_name) VALUES ($1) RETURNING id`, name).Scan(&id)
		if err != nil {
			return err
		}
		slog.Info("Instructor created", "name", name, "id", id)
		instructorIDs[name] = id
	}

	for _, course := range seedCourses {
		instructorID := instructorIDs[course.instructor]

		var existing int
		err := pool.QueryRow(ctx,
			`SELECT id FROM courses WHERE name = $1 AND instructor_id = $2`,
			course.name, instructorID).Scan(&existing)
		if err == nil {
			slog.Info("Course already present", "name", course.name, "id", existing)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO courses (name, seminar, instructor_id) VALUES ($1, $2, $3)`,
			course.name, course.seminar, instructorID)
		if err != nil {
			return err
		}
		slog.Info("Course created", "name", course.name, "seminar", course.seminar)
	}

	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Migrations also seed the fixed question rubric.
	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := seedCatalog(ctx, pool); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed completed")
}
