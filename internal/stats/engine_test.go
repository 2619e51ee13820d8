package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func evaluation(scores ...int) domain.Evaluation {
	answers := make([]domain.Answer, len(scores))
	for i, s := range scores {
		answers[i] = domain.Answer{QuestionID: i + 1, Score: s}
	}
	return domain.Evaluation{Answers: answers}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"half rounds up", 4.125, 4.13},
		{"two thirds", 2.0 / 3.0, 0.67},
		{"one third", 1.0 / 3.0, 0.33},
		{"exact", 4.25, 4.25},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}

func TestRound2_Idempotent(t *testing.T) {
	for _, v := range []float64{0, 1.5, 2.67, 4.99, 5} {
		assert.Equal(t, v, Round2(v))
	}
}

func TestInstructorStats_ExcludesZeroEvaluationInstructors(t *testing.T) {
	instructors := []domain.Instructor{
		{
			FullName: "SIN EVALUACIONES",
			Courses:  []domain.Course{{Name: "curso vacio", Seminar: strPtr("X")}},
		},
		{
			FullName: "CON EVALUACIONES",
			Courses: []domain.Course{
				{Name: "curso", Seminar: strPtr("X"), Evaluations: []domain.Evaluation{evaluation(3, 3, 3, 3, 3)}},
			},
		},
	}

	result := InstructorStats(instructors)
	require.Len(t, result, 1)
	assert.Equal(t, "CON EVALUACIONES", result[0].Instructor)
}

func TestInstructorStats_MeanAndCount(t *testing.T) {
	instructors := []domain.Instructor{
		{
			FullName: "DOCENTE",
			Courses: []domain.Course{
				{
					Name:    "curso",
					Seminar: strPtr("Seminario X"),
					Evaluations: []domain.Evaluation{
						evaluation(5, 5, 5, 5, 5),
						evaluation(3, 3, 3, 3, 3),
					},
				},
			},
		},
	}

	result := InstructorStats(instructors)
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].EvaluationCount)
	assert.Equal(t, 4.0, result[0].MeanScore)
	assert.Equal(t, "Seminario X", result[0].Seminar)
}

func TestInstructorStats_DistinctSeminarsJoined(t *testing.T) {
	instructors := []domain.Instructor{
		{
			FullName: "DOCENTE",
			Courses: []domain.Course{
				{Name: "a", Seminar: strPtr("Alpha"), Evaluations: []domain.Evaluation{evaluation(4)}},
				{Name: "b", Seminar: strPtr("Beta"), Evaluations: []domain.Evaluation{evaluation(4)}},
				{Name: "c", Seminar: strPtr("Alpha")},
				{Name: "d", Seminar: nil},
			},
		},
	}

	result := InstructorStats(instructors)
	require.Len(t, result, 1)
	assert.Equal(t, "Alpha, Beta", result[0].Seminar)
}

func TestInstructorStats_NoSeminarSentinel(t *testing.T) {
	instructors := []domain.Instructor{
		{
			FullName: "DOCENTE",
			Courses: []domain.Course{
				{Name: "a", Evaluations: []domain.Evaluation{evaluation(2, 2, 2, 2, 2)}},
			},
		},
	}

	result := InstructorStats(instructors)
	require.Len(t, result, 1)
	assert.Equal(t, domain.NoSeminarLabel, result[0].Seminar)
}

func TestSeminarStats_SkipsUnlabeledCourses(t *testing.T) {
	courses := []domain.Course{
		{Name: "a", Seminar: strPtr("X"), Evaluations: []domain.Evaluation{evaluation(4, 4)}},
		{Name: "b", Seminar: nil, Evaluations: []domain.Evaluation{evaluation(1, 1)}},
		{Name: "c", Seminar: strPtr(""), Evaluations: []domain.Evaluation{evaluation(1, 1)}},
	}

	result := SeminarStats(courses)
	require.Len(t, result, 1)
	assert.Equal(t, "X", result[0].Seminar)
	assert.Equal(t, 4.0, result[0].MeanScore)
}

func TestSeminarStats_GroupsAcrossCourses(t *testing.T) {
	courses := []domain.Course{
		{Name: "a", Seminar: strPtr("X"), Evaluations: []domain.Evaluation{evaluation(5, 5)}},
		{Name: "b", Seminar: strPtr("X"), Evaluations: []domain.Evaluation{evaluation(1, 1)}},
		{Name: "c", Seminar: strPtr("Y"), Evaluations: []domain.Evaluation{evaluation(2, 2)}},
	}

	result := SeminarStats(courses)
	require.Len(t, result, 2)
	assert.Equal(t, "X", result[0].Seminar)
	assert.Equal(t, 3.0, result[0].MeanScore)
	assert.Equal(t, "Y", result[1].Seminar)
	assert.Equal(t, 2.0, result[1].MeanScore)
}

// The overall mean is the unweighted mean of the per-seminar means. A
// seminar with a single all-fives evaluation and a seminar with a hundred
// all-ones evaluations must average to exactly 3, not near 1.
func TestCompute_OverallMeanIsAverageOfAverages(t *testing.T) {
	small := domain.Course{Name: "small", Seminar: strPtr("S"), Evaluations: []domain.Evaluation{evaluation(5, 5, 5, 5, 5)}}

	big := domain.Course{Name: "big", Seminar: strPtr("B")}
	for i := 0; i < 100; i++ {
		big.Evaluations = append(big.Evaluations, evaluation(1, 1, 1, 1, 1))
	}

	result := Compute(nil, []domain.Course{small, big})
	require.Len(t, result.SeminarStats, 2)
	assert.Equal(t, 3.0, result.OverallMean)
}

func TestCompute_NoSeminarsMeansZeroOverall(t *testing.T) {
	result := Compute(nil, nil)
	assert.Equal(t, 0.0, result.OverallMean)
	assert.Empty(t, result.SeminarStats)
	assert.Empty(t, result.InstructorStats)
}

// End-to-end seed scenario: one instructor, one course in seminar "X",
// evaluations [5,5,5,5,5] and [3,3,3,3,3].
func TestCompute_SeedScenario(t *testing.T) {
	course := domain.Course{
		Name:    "curso",
		Seminar: strPtr("X"),
		Evaluations: []domain.Evaluation{
			evaluation(5, 5, 5, 5, 5),
			evaluation(3, 3, 3, 3, 3),
		},
	}
	instructors := []domain.Instructor{{FullName: "DOCENTE", Courses: []domain.Course{course}}}

	result := Compute(instructors, []domain.Course{course})

	require.Len(t, result.InstructorStats, 1)
	assert.Equal(t, 4.0, result.InstructorStats[0].MeanScore)
	assert.Equal(t, 2, result.InstructorStats[0].EvaluationCount)

	require.Len(t, result.SeminarStats, 1)
	assert.Equal(t, 4.0, result.SeminarStats[0].MeanScore)
	assert.Equal(t, 4.0, result.OverallMean)
}
