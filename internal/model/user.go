package model

import "time"

// User represents a platform account. Point is mutated only when a
// problem submission earns the solve bonus.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Point     int       `json:"point"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// UserSummary is the owner blurb embedded in post and study responses.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary returns the embeddable form of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}
