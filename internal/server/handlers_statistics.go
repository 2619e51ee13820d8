package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/AlessandroLop/evaluacion-api/internal/errors"
	"github.com/AlessandroLop/evaluacion-api/internal/stats"
)

func (s *Server) handleStatistics(c echo.Context) error {
	ctx := c.Request().Context()

	instructors, err := s.repo.InstructorTree(ctx)
	if err != nil {
		return apperrors.InternalError("failed to load instructors", err)
	}
	seminarCourses, err := s.repo.SeminarCourses(ctx)
	if err != nil {
		return apperrors.InternalError("failed to load seminar courses", err)
	}

	result := stats.Compute(instructors, seminarCourses)
	return respond(c, http.StatusOK, result, "Statistics computed")
}

func (s *Server) handleSeminarStatistics(c echo.Context) error {
	seminarCourses, err := s.repo.SeminarCourses(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load seminar courses", err)
	}

	seminarStats := stats.SeminarStats(seminarCourses)
	return respond(c, http.StatusOK, map[string]any{
		"seminarStats": seminarStats,
	}, "Seminar statistics computed")
}
