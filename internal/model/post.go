package model

import (
	"strings"
	"time"
)

// PostKind identifies the concrete post variant. The set is sealed:
// every switch over PostKind must carry a default branch that surfaces
// ErrUnsupportedPostKind instead of silently returning nothing.
type PostKind string

const (
	PostKindProblem     PostKind = "problem"
	PostKindInformation PostKind = "information"
)

// IsValid returns true if the kind is a known post variant.
func (k PostKind) IsValid() bool {
	switch k {
	case PostKindProblem, PostKindInformation:
		return true
	default:
		return false
	}
}

// Post is a user-authored content row. Problem posts carry the answer
// and example fields; information posts carry main text only. Deletion
// is a soft flag, the row is never removed.
type Post struct {
	ID        string    `json:"id"`
	Kind      PostKind  `json:"kind"`
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"`
	MainText  string    `json:"main_text"`
	Answer    string    `json:"answer,omitempty"`
	Example1  string    `json:"example1,omitempty"`
	Example2  string    `json:"example2,omitempty"`
	Example3  string    `json:"example3,omitempty"`
	Example4  string    `json:"example4,omitempty"`
	IsDeleted bool      `json:"is_deleted"`
	Views     int       `json:"views"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// LikeDislike is the single reaction row for a (user, post) pair.
// IsLike true is a like, false a dislike. The pair never has more than
// one row; clicking toggles or removes it.
type LikeDislike struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	PostID string `json:"post_id"`
	IsLike bool   `json:"is_like"`
}

// WriteProblemRequest carries a new problem post.
type WriteProblemRequest struct {
	Title    string   `json:"title"`
	MainText string   `json:"main_text"`
	Answer   string   `json:"answer"`
	Example1 string   `json:"example1"`
	Example2 string   `json:"example2"`
	Example3 string   `json:"example3"`
	Example4 string   `json:"example4"`
	Tags     []string `json:"tags"`
}

// Validate checks if the problem request is valid
func (r *WriteProblemRequest) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(r.MainText) == "" {
		errors = append(errors, FieldError{Field: "main_text", Message: "main_text is required"})
	}
	if strings.TrimSpace(r.Answer) == "" {
		errors = append(errors, FieldError{Field: "answer", Message: "answer is required"})
	}
	return errors
}

// WriteInformationRequest carries a new information post.
type WriteInformationRequest struct {
	Title    string   `json:"title"`
	MainText string   `json:"main_text"`
	Tags     []string `json:"tags"`
}

// Validate checks if the information request is valid
func (r *WriteInformationRequest) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(r.MainText) == "" {
		errors = append(errors, FieldError{Field: "main_text", Message: "main_text is required"})
	}
	return errors
}

// LikeDislikeRequest carries a reaction click.
type LikeDislikeRequest struct {
	PostID string `json:"post_id"`
	IsLike bool   `json:"is_like"`
}

// Validate checks if the reaction request is valid
func (r *LikeDislikeRequest) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(r.PostID) == "" {
		errors = append(errors, FieldError{Field: "post_id", Message: "post_id is required"})
	}
	return errors
}

// SearchPostRequest filters posts by title substring and/or tag code.
// Empty fields are not applied.
type SearchPostRequest struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// PostDetail is the full single-post view, including computed reaction
// counts and the resolved tag list.
type PostDetail struct {
	ID            string      `json:"id"`
	Kind          PostKind    `json:"kind"`
	Title         string      `json:"title"`
	User          UserSummary `json:"user"`
	MainText      string      `json:"main_text"`
	Answer        string      `json:"answer,omitempty"`
	Example1      string      `json:"example1,omitempty"`
	Example2      string      `json:"example2,omitempty"`
	Example3      string      `json:"example3,omitempty"`
	Example4      string      `json:"example4,omitempty"`
	Views         int         `json:"views"`
	NumOfLikes    int         `json:"num_of_likes"`
	NumOfDislikes int         `json:"num_of_dislikes"`
	Tags          []Tag       `json:"tags"`
}

// PostSummary is the lightweight listing/search row.
type PostSummary struct {
	ID            string      `json:"id"`
	Kind          PostKind    `json:"kind"`
	Title         string      `json:"title"`
	User          UserSummary `json:"user"`
	Views         int         `json:"views"`
	NumOfLikes    int         `json:"num_of_likes"`
	NumOfDislikes int         `json:"num_of_dislikes"`
}
