// Package stats computes aggregate evaluation statistics. Everything here
// is pure computation over records the repository already loaded; malformed
// input is the caller's problem, validation happens at evaluation creation.
package stats

import (
	"math"
	"strings"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
)

// Round2 rounds half-up to two decimal places on the scaled integer.
// Rounding an already-2-decimal value returns the same value.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Compute builds the full statistics report. instructors must carry the
// nested course → evaluation → answer tree; seminarCourses is the
// independent list of all courses with a non-null seminar label and their
// nested scores. Seminar aggregation is intentionally not derived from the
// instructor list, mirroring the two separate persistence reads.
func Compute(instructors []domain.Instructor, seminarCourses []domain.Course) domain.Statistics {
	seminarStats := SeminarStats(seminarCourses)

	var overall float64
	if len(seminarStats) > 0 {
		var sum float64
		for _, s := range seminarStats {
			sum += s.MeanScore
		}
		overall = Round2(sum / float64(len(seminarStats)))
	}

	return domain.Statistics{
		InstructorStats: InstructorStats(instructors),
		OverallMean:     overall,
		SeminarStats:    seminarStats,
	}
}

// InstructorStats aggregates per instructor across all their courses.
// Instructors with zero evaluations contribute nothing observable and are
// dropped from the result.
func InstructorStats(instructors []domain.Instructor) []domain.InstructorStat {
	result := make([]domain.InstructorStat, 0, len(instructors))

	for _, instructor := range instructors {
		evaluationCount := 0
		answerCount := 0
		scoreSum := 0

		for _, course := range instructor.Courses {
			evaluationCount += len(course.Evaluations)
			for _, evaluation := range course.Evaluations {
				answerCount += len(evaluation.Answers)
				for _, answer := range evaluation.Answers {
					scoreSum += answer.Score
				}
			}
		}

		if evaluationCount == 0 {
			continue
		}

		mean := 0.0
		if answerCount > 0 {
			mean = Round2(float64(scoreSum) / float64(answerCount))
		}

		result = append(result, domain.InstructorStat{
			Instructor:      instructor.FullName,
			Seminar:         seminarLabel(instructor.Courses),
			EvaluationCount: evaluationCount,
			MeanScore:       mean,
		})
	}

	return result
}

// SeminarStats groups courses by seminar label and averages all answer
// scores per group. Groups appear in order of first occurrence.
func SeminarStats(courses []domain.Course) []domain.SeminarStat {
	type bucket struct {
		sum   int
		count int
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, course := range courses {
		if course.Seminar == nil || *course.Seminar == "" {
			continue
		}
		label := *course.Seminar

		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
			order = append(order, label)
		}

		for _, evaluation := range course.Evaluations {
			for _, answer := range evaluation.Answers {
				b.sum += answer.Score
				b.count++
			}
		}
	}

	result := make([]domain.SeminarStat, 0, len(order))
	for _, label := range order {
		b := buckets[label]
		mean := 0.0
		if b.count > 0 {
			mean = Round2(float64(b.sum) / float64(b.count))
		}
		result = append(result, domain.SeminarStat{Seminar: label, MeanScore: mean})
	}

	return result
}

// seminarLabel joins the distinct non-empty seminar labels of an
// instructor's courses, in course order.
func seminarLabel(courses []domain.Course) string {
	var labels []string
	seen := make(map[string]bool)

	for _, course := range courses {
		if course.Seminar == nil || *course.Seminar == "" {
			continue
		}
		if seen[*course.Seminar] {
			continue
		}
		seen[*course.Seminar] = true
		labels = append(labels, *course.Seminar)
	}

	if len(labels) == 0 {
		return domain.NoSeminarLabel
	}
	return strings.Join(labels, ", ")
}
