package domain

// NoSeminarLabel is emitted for instructors whose courses carry no
// seminar label at all.
const NoSeminarLabel = "Sin seminario"

// InstructorStat is the per-instructor aggregate computed over all
// evaluations of all their courses.
type InstructorStat struct {
	Instructor      string  `json:"instructor"`
	Seminar         string  `json:"seminar"`
	EvaluationCount int     `json:"evaluationCount"`
	MeanScore       float64 `json:"meanScore"`
}

// SeminarStat is the aggregate over all evaluations of all courses
// carrying one seminar label.
type SeminarStat struct {
	Seminar   string  `json:"seminar"`
	MeanScore float64 `json:"meanScore"`
}

// Statistics is the full aggregate report. OverallMean is deliberately the
// unweighted mean of the per-seminar means, not a mean over raw scores.
type Statistics struct {
	InstructorStats []InstructorStat `json:"instructorStats"`
	OverallMean     float64          `json:"overallMean"`
	SeminarStats    []SeminarStat    `json:"seminarStats"`
}
