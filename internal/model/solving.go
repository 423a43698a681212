package model

import (
	"strings"
	"time"
)

// SolvePointBonus is awarded the first time a user gets a problem right,
// whether on the initial attempt or a later correction.
const SolvePointBonus = 10

// Solving records a user's attempt outcome on a problem. IsRight tracks
// the current state and may flip from false to true once; FirstIsRight
// is fixed at creation and feeds the success-rate statistic.
type Solving struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProblemID    string    `json:"problem_id"`
	IsRight      bool      `json:"is_right"`
	FirstIsRight bool      `json:"first_is_right"`
	CreatedOn    time.Time `json:"created_on"`
}

// SubmitSolvingRequest carries one submission for a problem.
type SubmitSolvingRequest struct {
	ProblemID string `json:"problem_id"`
	IsRight   bool   `json:"is_right"`
}

// Validate checks if the submission is valid
func (r *SubmitSolvingRequest) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(r.ProblemID) == "" {
		errors = append(errors, FieldError{Field: "problem_id", Message: "problem_id is required"})
	}
	return errors
}

// SolvingSummary is one row of a user's solving history, enriched with
// the problem's title and tags.
type SolvingSummary struct {
	ID        string `json:"id"`
	ProblemID string `json:"problem_id"`
	Title     string `json:"title"`
	Tags      []Tag  `json:"tags"`
	IsRight   bool   `json:"is_right"`
}

// SuccessRate is the aggregate first-attempt statistic for a problem.
// Rate is a percentage rounded to two decimals; a problem with no
// submissions reports 0.
type SuccessRate struct {
	ProblemID   string  `json:"problem_id"`
	Rate        float64 `json:"rate"`
	SubmitCount int     `json:"submit_count"`
}
