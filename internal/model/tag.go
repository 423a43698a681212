package model

// Tag is reference data attachable to posts and study groups. Code is
// unique and is what clients send when tagging content.
type Tag struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
