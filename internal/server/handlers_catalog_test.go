package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
)

func TestHandleListInstructors_Success(t *testing.T) {
	repo := &mockRepository{
		listInstructorsFn: func(_ context.Context) ([]domain.Instructor, error) {
			return []domain.Instructor{
				{ID: 1, FullName: "Ana García", Courses: []domain.Course{{ID: 10, Name: "Álgebra Lineal"}}},
			}, nil
		},
	}
	srv := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/instructors", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleListInstructors(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                `json:"success"`
		Data    []domain.Instructor `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Ana García", body.Data[0].FullName)
	require.Len(t, body.Data[0].Courses, 1)
}

func TestHandleInstructorCourses_BadID(t *testing.T) {
	srv := newTestServer(t, &mockRepository{})

	req := httptest.NewRequest(http.MethodGet, "/instructors/abc/courses", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	_ = callHandler(srv.handleInstructorCourses, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInstructorCourses_NotFound(t *testing.T) {
	repo := &mockRepository{
		listCoursesByInstructorFn: func(_ context.Context, _ int) ([]domain.Course, error) {
			return nil, domain.ErrInstructorNotFound
		},
	}
	srv := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/instructors/99/courses", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	_ = callHandler(srv.handleInstructorCourses, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHandleInstructorCourses_Success(t *testing.T) {
	repo := &mockRepository{
		listCoursesByInstructorFn: func(_ context.Context, instructorID int) ([]domain.Course, error) {
			assert.Equal(t, 1, instructorID)
			return []domain.Course{{ID: 10, Name: "Álgebra Lineal", InstructorID: 1}}, nil
		},
	}
	srv := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/instructors/1/courses", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, srv.handleInstructorCourses(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleListQuestions_Success(t *testing.T) {
	repo := &mockRepository{
		listQuestionsFn: func(_ context.Context) ([]domain.Question, error) {
			return []domain.Question{
				{ID: 1, Text: "Dominio y manejo del tema del curso."},
				{ID: 2, Text: "Claridad en la exposición de los conceptos."},
			}, nil
		},
	}
	srv := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleListQuestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.Question `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, 1, body.Data[0].ID)
}

func TestHandleRoot_ListsEndpoints(t *testing.T) {
	srv := newTestServer(t, &mockRepository{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleRoot(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST /evaluations")
}
