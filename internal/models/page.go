package models

// PageMeta is the pagination block the backend attaches to list responses.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// HasNext reports whether another page follows the current one.
func (m PageMeta) HasNext() bool { return m.CurrentPage < m.LastPage }

// HasPrev reports whether a page precedes the current one.
func (m PageMeta) HasPrev() bool { return m.CurrentPage > 1 }

// UserPage is one page of the user directory plus its pagination metadata.
type UserPage struct {
	Users []UserProfile
	Meta  PageMeta
}
