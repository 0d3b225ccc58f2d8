package entity

import "time"

// LessonInfo describes one workshop lesson for listings and banners.
type LessonInfo struct {
	Number  int    `json:"number"`
	Command string `json:"command"`
	Title   string `json:"title"`
	Teaches string `json:"teaches"`
}

// ConceptStatus is the outcome of a single numbered concept inside a lesson.
type ConceptStatus string

const (
	ConceptDone    ConceptStatus = "done"
	ConceptSkipped ConceptStatus = "skipped"
	ConceptFailed  ConceptStatus = "failed"
)

// ConceptResult records how one concept of a walkthrough went.
type ConceptResult struct {
	Number  int           `json:"number"`
	Title   string        `json:"title"`
	Status  ConceptStatus `json:"status"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// LessonResult agrega o resultado de uma lição completa para o resumo final.
type LessonResult struct {
	Lesson   LessonInfo      `json:"lesson"`
	Concepts []ConceptResult `json:"concepts"`
	Elapsed  time.Duration   `json:"elapsed"`
	Aborted  bool            `json:"aborted"`
}

// FailedCount returns how many concepts ended in failure.
func (r LessonResult) FailedCount() int {
	var n int
	for _, c := range r.Concepts {
		if c.Status == ConceptFailed {
			n++
		}
	}
	return n
}
