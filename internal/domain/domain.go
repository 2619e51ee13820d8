// Package domain holds the entities shared across the evaluation service.
package domain

import "time"

// Instructor is a person being evaluated, with the courses they teach.
type Instructor struct {
	ID       int      `json:"instructorId"`
	FullName string   `json:"fullName"`
	Courses  []Course `json:"courses,omitempty"`
}

// Course is a taught unit linked to exactly one instructor. Seminar is the
// optional label grouping courses for aggregate reporting.
type Course struct {
	ID           int          `json:"courseId"`
	Name         string       `json:"name"`
	Seminar      *string      `json:"seminar"`
	InstructorID int          `json:"-"`
	Evaluations  []Evaluation `json:"-"`
}

// Question is one item of the fixed evaluation rubric. Ordering by
// ascending ID is significant: the i-th submitted answer belongs to the
// i-th question.
type Question struct {
	ID   int    `json:"questionId"`
	Text string `json:"text"`
}

// Evaluation is one anonymous submission tied to a course. It always owns
// exactly as many answers as there are questions at creation time.
type Evaluation struct {
	ID        int       `json:"evaluationId"`
	CourseID  int       `json:"-"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	Answers   []Answer  `json:"-"`
}

// CourseInfo is course metadata with its instructor, used when listing
// comments.
type CourseInfo struct {
	ID         int        `json:"courseId"`
	Name       string     `json:"name"`
	Seminar    *string    `json:"seminar"`
	Instructor Instructor `json:"instructor"`
}

// Answer is a single Likert score (1..5) for one question of an evaluation.
type Answer struct {
	ID           int `json:"-"`
	EvaluationID int `json:"-"`
	QuestionID   int `json:"questionId"`
	Score        int `json:"score"`
}
