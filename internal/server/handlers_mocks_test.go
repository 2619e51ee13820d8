package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/AlessandroLop/evaluacion-api/internal/config"
	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	apperrors "github.com/AlessandroLop/evaluacion-api/internal/errors"
	"github.com/AlessandroLop/evaluacion-api/internal/ratelimit"
)

// --- Mock implementations ---

type mockRepository struct {
	listInstructorsFn          func(ctx context.Context) ([]domain.Instructor, error)
	listCoursesByInstructorFn  func(ctx context.Context, instructorID int) ([]domain.Course, error)
	listQuestionsFn            func(ctx context.Context) ([]domain.Question, error)
	courseExistsFn             func(ctx context.Context, courseID int) (bool, error)
	createEvaluationFn         func(ctx context.Context, courseID int, comments string, scores []int) (int, error)
	instructorTreeFn           func(ctx context.Context) ([]domain.Instructor, error)
	seminarCoursesFn           func(ctx context.Context) ([]domain.Course, error)
	commentsByCourseFn         func(ctx context.Context, courseID int) (*domain.CourseInfo, []domain.Evaluation, error)
	pingFn                     func(ctx context.Context) error
}

func (m *mockRepository) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	if m.listInstructorsFn != nil {
		return m.listInstructorsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListCoursesByInstructor(ctx context.Context, instructorID int) ([]domain.Course, error) {
	if m.listCoursesByInstructorFn != nil {
		return m.listCoursesByInstructorFn(ctx, instructorID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if m.listQuestionsFn != nil {
		return m.listQuestionsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) CourseExists(ctx context.Context, courseID int) (bool, error) {
	if m.courseExistsFn != nil {
		return m.courseExistsFn(ctx, courseID)
	}
	return true, nil
}

func (m *mockRepository) CreateEvaluation(ctx context.Context, courseID int, comments string, scores []int) (int, error) {
	if m.createEvaluationFn != nil {
		return m.createEvaluationFn(ctx, courseID, comments, scores)
	}
	return 0, errors.New("not implemented")
}

func (m *mockRepository) InstructorTree(ctx context.Context) ([]domain.Instructor, error) {
	if m.instructorTreeFn != nil {
		return m.instructorTreeFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) SeminarCourses(ctx context.Context) ([]domain.Course, error) {
	if m.seminarCoursesFn != nil {
		return m.seminarCoursesFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) CommentsByCourse(ctx context.Context, courseID int) (*domain.CourseInfo, []domain.Evaluation, error) {
	if m.commentsByCourseFn != nil {
		return m.commentsByCourseFn(ctx, courseID)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockRepository) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type mockSentimentService struct {
	analyzeFn func(ctx context.Context, texts []string) ([]domain.SentimentResult, bool, error)
}

func (m *mockSentimentService) Analyze(ctx context.Context, texts []string) ([]domain.SentimentResult, bool, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, texts)
	}
	return nil, false, errors.New("not implemented")
}

// --- Test helpers ---

func newTestServer(t *testing.T, repo Repository, opts ...func(*Server)) *Server {
	t.Helper()

	srv := &Server{
		echo:      echo.New(),
		config: &config.Config{
			Port:                "8080",
			SentimentRateLimit:  5,
			SentimentRateWindow: time.Minute,
			APIRatePerSecond:    20,
			APIRateBurst:        40,
		},
		repo:      repo,
		limiter:   ratelimit.New(5, time.Minute, clockwork.NewFakeClock()),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}

func withSentiment(svc SentimentService) func(*Server) {
	return func(s *Server) { s.sentiment = svc }
}

func withLimiter(l *ratelimit.Limiter) func(*Server) {
	return func(s *Server) { s.limiter = l }
}

// callHandler runs a handler behind the error middleware so structured
// errors are rendered the way clients see them.
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware(false)(handler)(c)
}
