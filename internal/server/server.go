// Package server exposes the evaluation API over HTTP.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AlessandroLop/evaluacion-api/internal/config"
	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	"github.com/AlessandroLop/evaluacion-api/internal/ratelimit"
)

// Repository is the persistence surface the handlers need.
type Repository interface {
	ListInstructors(ctx context.Context) ([]domain.Instructor, error)
	ListCoursesByInstructor(ctx context.Context, instructorID int) ([]domain.Course, error)
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	CourseExists(ctx context.Context, courseID int) (bool, error)
	CreateEvaluation(ctx context.Context, courseID int, comments string, scores []int) (int, error)
	InstructorTree(ctx context.Context) ([]domain.Instructor, error)
	SeminarCourses(ctx context.Context) ([]domain.Course, error)
	CommentsByCourse(ctx context.Context, courseID int) (*domain.CourseInfo, []domain.Evaluation, error)
	Ping(ctx context.Context) error
}

// SentimentService is the cache-fronted provider gateway. The bool reports
// whether the response was served from the cache.
type SentimentService interface {
	Analyze(ctx context.Context, texts []string) ([]domain.SentimentResult, bool, error)
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	repo      Repository
	sentiment SentimentService
	limiter   *ratelimit.Limiter
	startTime time.Time
}

// NewServer wires routes and middleware. sentimentSvc may be nil, in which
// case the /sentiments route is not registered.
func NewServer(cfg *config.Config, repo Repository, sentimentSvc SentimentService, limiter *ratelimit.Limiter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		config:    cfg,
		repo:      repo,
		sentiment: sentimentSvc,
		limiter:   limiter,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// envelope is the uniform success payload.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data any, message string) error {
	if err := c.JSON(status, envelope{Success: true, Data: data, Message: message}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
