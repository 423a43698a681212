package model

// Page bounds for listing endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a zero-based page selector.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PostPage is a page of post summaries with listing totals.
type PostPage struct {
	Content       []PostSummary `json:"content"`
	TotalPages    int           `json:"total_pages"`
	TotalElements int           `json:"total_elements"`
}

// NewPostPage assembles a page, deriving the page count from the total
// element count and requested size.
func NewPostPage(content []PostSummary, total, size int) PostPage {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return PostPage{
		Content:       content,
		TotalPages:    pages,
		TotalElements: total,
	}
}
