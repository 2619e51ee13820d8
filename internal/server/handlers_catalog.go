package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	apperrors "github.com/AlessandroLop/evaluacion-api/internal/errors"
	"github.com/AlessandroLop/evaluacion-api/internal/version"
)

func (s *Server) handleRoot(c echo.Context) error {
	return respond(c, http.StatusOK, map[string]any{
		"name":    "evaluacion-api",
		"version": version.Get().Version,
		"endpoints": []string{
			"GET /instructors",
			"GET /instructors/:id/courses",
			"GET /questions",
			"POST /evaluations",
			"GET /courses/:id/comments",
			"GET /statistics",
			"GET /statistics/seminars",
			"POST /sentiments",
			"GET /health",
		},
	}, "Anonymous course evaluation API")
}

func (s *Server) handleListInstructors(c echo.Context) error {
	instructors, err := s.repo.ListInstructors(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list instructors", err)
	}
	return respond(c, http.StatusOK, instructors, "Instructors retrieved")
}

func (s *Server) handleInstructorCourses(c echo.Context) error {
	instructorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("instructor id must be numeric").WithField("id", c.Param("id"))
	}

	courses, err := s.repo.ListCoursesByInstructor(c.Request().Context(), instructorID)
	if err != nil {
		if errors.Is(err, domain.ErrInstructorNotFound) {
			return apperrors.NotFoundError("instructor not found").WithField("instructor_id", instructorID)
		}
		return apperrors.InternalError("failed to list courses", err).WithField("instructor_id", instructorID)
	}

	return respond(c, http.StatusOK, courses, "Courses retrieved")
}

func (s *Server) handleListQuestions(c echo.Context) error {
	questions, err := s.repo.ListQuestions(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list questions", err)
	}
	return respond(c, http.StatusOK, questions, "Questions retrieved")
}
