package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
)

// pgExecutor is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// Repository gives typed access to instructors, courses, questions and
// evaluations.
type Repository struct {
	db pgExecutor
}

// NewRepository creates a repository backed by any executor that satisfies
// pgExecutor.
func NewRepository(db pgExecutor) *Repository {
	return &Repository{db: db}
}

// Ping reports persistence reachability for health checks.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// ListInstructors returns all instructors with their courses, instructors
// ordered by name and courses by name.
func (r *Repository) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.full_name, c.id, c.name, c.seminar
		FROM instructors i
		LEFT JOIN courses c ON c.instructor_id = i.id
		ORDER BY i.full_name, i.id, c.name, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	defer rows.Close()

	var instructors []domain.Instructor
	byID := make(map[int]int)

	for rows.Next() {
		var (
			instructorID int
			fullName     string
			courseID     *int
			courseName   *string
			seminar      *string
		)
		if err := rows.Scan(&instructorID, &fullName, &courseID, &courseName, &seminar); err != nil {
			return nil, fmt.Errorf("failed to scan instructor row: %w", err)
		}

		idx, ok := byID[instructorID]
		if !ok {
			instructors = append(instructors, domain.Instructor{ID: instructorID, FullName: fullName, Courses: []domain.Course{}})
			idx = len(instructors) - 1
			byID[instructorID] = idx
		}

		if courseID != nil {
			instructors[idx].Courses = append(instructors[idx].Courses, domain.Course{
				ID:           *courseID,
				Name:         *courseName,
				Seminar:      seminar,
				InstructorID: instructorID,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate instructor rows: %w", err)
	}

	return instructors, nil
}

// ListCoursesByInstructor returns the courses of one instructor, or
// domain.ErrInstructorNotFound.
func (r *Repository) ListCoursesByInstructor(ctx context.Context, instructorID int) ([]domain.Course, error) {
	var exists int
	err := r.db.QueryRow(ctx, `SELECT id FROM instructors WHERE id = $1`, instructorID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up instructor: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, seminar
		FROM courses
		WHERE instructor_id = $1
		ORDER BY name, id
	`, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		course := domain.Course{InstructorID: instructorID}
		if err := rows.Scan(&course.ID, &course.Name, &course.Seminar); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate course rows: %w", err)
	}

	return courses, nil
}

// ListQuestions returns the fixed rubric ordered by ascending ID. The
// ordering is load-bearing: answer i of a submission pairs with the i-th
// question returned here.
func (r *Repository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.db.Query(ctx, `SELECT id, text FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question rows: %w", err)
	}

	return questions, nil
}

// CourseExists reports whether a course row exists.
func (r *Repository) CourseExists(ctx context.Context, courseID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}

// CreateEvaluation atomically inserts one evaluation and one answer per
// question, pairing score i with the i-th question by ascending ID. The
// whole submission is rolled back when the score count does not match the
// question count.
func (r *Repository) CreateEvaluation(ctx context.Context, courseID int, comments string, scores []int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	questionIDs, err := orderedQuestionIDs(ctx, tx)
	if err != nil {
		return 0, err
	}
	if len(scores) != len(questionIDs) {
		return 0, domain.ErrAnswerCountMismatch
	}

	var evaluationID int
	err = tx.QueryRow(ctx, `
		INSERT INTO evaluations (course_id, comments, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`, courseID, comments).Scan(&evaluationID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert evaluation: %w", err)
	}

	for i, score := range scores {
		_, err = tx.Exec(ctx, `
			INSERT INTO answers (evaluation_id, question_id, score)
			VALUES ($1, $2, $3)
		`, evaluationID, questionIDs[i], score)
		if err != nil {
			return 0, fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit evaluation: %w", err)
	}

	return evaluationID, nil
}

func orderedQuestionIDs(ctx context.Context, tx pgx.Tx) ([]int, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list question IDs: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan question ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question IDs: %w", err)
	}
	return ids, nil
}

// InstructorTree returns every instructor with the full nested course →
// evaluation → answer-score tree the aggregation engine consumes.
func (r *Repository) InstructorTree(ctx context.Context) ([]domain.Instructor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.full_name, c.id, c.name, c.seminar, e.id, a.score
		FROM instructors i
		LEFT JOIN courses c ON c.instructor_id = i.id
		LEFT JOIN evaluations e ON e.course_id = c.id
		LEFT JOIN answers a ON a.evaluation_id = e.id
		ORDER BY i.id, c.id, e.id, a.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load instructor tree: %w", err)
	}
	defer rows.Close()

	var instructors []domain.Instructor

	for rows.Next() {
		var (
			instructorID int
			fullName     string
			courseID     *int
			courseName   *string
			seminar      *string
			evaluationID *int
			score        *int
		)
		if err := rows.Scan(&instructorID, &fullName, &courseID, &courseName, &seminar, &evaluationID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan tree row: %w", err)
		}

		if len(instructors) == 0 || instructors[len(instructors)-1].ID != instructorID {
			instructors = append(instructors, domain.Instructor{ID: instructorID, FullName: fullName})
		}
		instructor := &instructors[len(instructors)-1]

		if courseID == nil {
			continue
		}
		if len(instructor.Courses) == 0 || instructor.Courses[len(instructor.Courses)-1].ID != *courseID {
			instructor.Courses = append(instructor.Courses, domain.Course{
				ID:           *courseID,
				Name:         *courseName,
				Seminar:      seminar,
				InstructorID: instructorID,
			})
		}
		course := &instructor.Courses[len(instructor.Courses)-1]

		if evaluationID == nil {
			continue
		}
		if len(course.Evaluations) == 0 || course.Evaluations[len(course.Evaluations)-1].ID != *evaluationID {
			course.Evaluations = append(course.Evaluations, domain.Evaluation{ID: *evaluationID, CourseID: *courseID})
		}
		evaluation := &course.Evaluations[len(course.Evaluations)-1]

		if score != nil {
			evaluation.Answers = append(evaluation.Answers, domain.Answer{EvaluationID: *evaluationID, Score: *score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tree rows: %w", err)
	}

	return instructors, nil
}

// SeminarCourses returns all courses carrying a seminar label with their
// nested evaluation scores. Computed independently from the instructor
// tree on purpose.
func (r *Repository) SeminarCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.seminar, e.id, a.score
		FROM courses c
		LEFT JOIN evaluations e ON e.course_id = c.id
		LEFT JOIN answers a ON a.evaluation_id = e.id
		WHERE c.seminar IS NOT NULL
		ORDER BY c.id, e.id, a.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load seminar courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course

	for rows.Next() {
		var (
			courseID     int
			courseName   string
			seminar      *string
			evaluationID *int
			score        *int
		)
		if err := rows.Scan(&courseID, &courseName, &seminar, &evaluationID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan seminar row: %w", err)
		}

		if len(courses) == 0 || courses[len(courses)-1].ID != courseID {
			courses = append(courses, domain.Course{ID: courseID, Name: courseName, Seminar: seminar})
		}
		course := &courses[len(courses)-1]

		if evaluationID == nil {
			continue
		}
		if len(course.Evaluations) == 0 || course.Evaluations[len(course.Evaluations)-1].ID != *evaluationID {
			course.Evaluations = append(course.Evaluations, domain.Evaluation{ID: *evaluationID, CourseID: courseID})
		}
		evaluation := &course.Evaluations[len(course.Evaluations)-1]

		if score != nil {
			evaluation.Answers = append(evaluation.Answers, domain.Answer{EvaluationID: *evaluationID, Score: *score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seminar rows: %w", err)
	}

	return courses, nil
}

// CommentsByCourse returns course metadata plus all evaluation comments,
// newest first, or domain.ErrCourseNotFound.
func (r *Repository) CommentsByCourse(ctx context.Context, courseID int) (*domain.CourseInfo, []domain.Evaluation, error) {
	var info domain.CourseInfo
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.name, c.seminar, i.id, i.full_name
		FROM courses c
		JOIN instructors i ON i.id = c.instructor_id
		WHERE c.id = $1
	`, courseID).Scan(&info.ID, &info.Name, &info.Seminar, &info.Instructor.ID, &info.Instructor.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load course: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, comments, created_at
		FROM evaluations
		WHERE course_id = $1
		ORDER BY created_at DESC, id DESC
	`, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	evaluations := []domain.Evaluation{}
	for rows.Next() {
		evaluation := domain.Evaluation{CourseID: courseID}
		if err := rows.Scan(&evaluation.ID, &evaluation.Comments, &evaluation.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		evaluations = append(evaluations, evaluation)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}

	return &info, evaluations, nil
}
