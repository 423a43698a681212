package model

import (
	"strings"
	"time"
)

// StudyGroup is a membership-managed study circle. CurrentPerson always
// equals the number of user_study rows referencing the group; the owner
// is the first member.
type StudyGroup struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	MainText      string    `json:"main_text"`
	SecretText    string    `json:"secret_text,omitempty"`
	MaxPerson     int       `json:"max_person"`
	CurrentPerson int       `json:"current_person"`
	Place         string    `json:"place"`
	ExpiredAt     time.Time `json:"expired_at"`
	UserID        string    `json:"user_id"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// StudyGroupRequest carries create and update payloads for a study
// group. Tags replace the existing associations wholesale.
type StudyGroupRequest struct {
	Title      string    `json:"title"`
	MainText   string    `json:"main_text"`
	SecretText string    `json:"secret_text"`
	MaxPerson  int       `json:"max_person"`
	Place      string    `json:"place"`
	ExpiredAt  time.Time `json:"expired_at"`
	Tags       []string  `json:"tags"`
}

// Validate checks if the study group request is valid
func (r *StudyGroupRequest) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(r.MainText) == "" {
		errors = append(errors, FieldError{Field: "main_text", Message: "main_text is required"})
	}
	if r.MaxPerson < 1 {
		errors = append(errors, FieldError{Field: "max_person", Message: "max_person must be at least 1"})
	}
	if r.ExpiredAt.IsZero() {
		errors = append(errors, FieldError{Field: "expired_at", Message: "expired_at is required"})
	}
	return errors
}

// StudyGroupDetail is the group view returned to viewers. SecretText and
// Members are populated only when the requesting user is a member.
type StudyGroupDetail struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	MainText      string    `json:"main_text"`
	SecretText    string    `json:"secret_text,omitempty"`
	MaxPerson     int       `json:"max_person"`
	CurrentPerson int       `json:"current_person"`
	Place         string    `json:"place"`
	ExpiredAt     time.Time `json:"expired_at"`
	Tags          []Tag     `json:"tags"`
	IsMember      bool      `json:"is_member"`
	Members       []string  `json:"members,omitempty"`
}
