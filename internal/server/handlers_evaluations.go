package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	apperrors "github.com/AlessandroLop/evaluacion-api/internal/errors"
	"github.com/AlessandroLop/evaluacion-api/internal/metrics"
)

const (
	minCommentLength = 10
	answersPerRubric = 5
)

type createEvaluationRequest struct {
	CourseID *int   `json:"courseId"`
	Comments string `json:"comments"`
	Answers  []int  `json:"answers"`
}

func (s *Server) handleCreateEvaluation(c echo.Context) error {
	var req createEvaluationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	if req.CourseID == nil {
		return apperrors.ValidationError("courseId is required")
	}
	comments := strings.TrimSpace(req.Comments)
	if len([]rune(comments)) < minCommentLength {
		return apperrors.ValidationError(
			fmt.Sprintf("comments must be at least %d characters", minCommentLength))
	}
	if len(req.Answers) != answersPerRubric {
		return apperrors.ValidationError(
			fmt.Sprintf("exactly %d answers are required", answersPerRubric)).
			WithField("received", len(req.Answers))
	}
	for i, score := range req.Answers {
		if score < 1 || score > 5 {
			return apperrors.ValidationError("each answer must be a score between 1 and 5").
				WithField("position", i).
				WithField("score", score)
		}
	}

	ctx := c.Request().Context()

	exists, err := s.repo.CourseExists(ctx, *req.CourseID)
	if err != nil {
		return apperrors.InternalError("failed to check course", err).WithField("course_id", *req.CourseID)
	}
	if !exists {
		return apperrors.NotFoundError("course not found").WithField("course_id", *req.CourseID)
	}

	evaluationID, err := s.repo.CreateEvaluation(ctx, *req.CourseID, comments, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrAnswerCountMismatch) {
			return apperrors.ValidationError("answer count does not match the question rubric")
		}
		return apperrors.InternalError("failed to create evaluation", err).WithField("course_id", *req.CourseID)
	}

	metrics.EvaluationsCreated.Inc()

	return respond(c, http.StatusCreated,
		map[string]any{"evaluationId": evaluationID},
		"Evaluation registered")
}

func (s *Server) handleCourseComments(c echo.Context) error {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("course id must be numeric").WithField("id", c.Param("id"))
	}

	info, evaluations, err := s.repo.CommentsByCourse(c.Request().Context(), courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return apperrors.NotFoundError("course not found").WithField("course_id", courseID)
		}
		return apperrors.InternalError("failed to list comments", err).WithField("course_id", courseID)
	}

	return respond(c, http.StatusOK, map[string]any{
		"course":   info,
		"total":    len(evaluations),
		"comments": evaluations,
	}, "Comments retrieved")
}
