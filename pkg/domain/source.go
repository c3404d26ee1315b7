package domain

import "time"

// Source represents a configured content source and its fetch state
type Source struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Strategy    string     `json:"strategy"`
	PageSize    int        `json:"page_size"`
	MaxPages    int        `json:"max_pages"`
	Enabled     bool       `json:"enabled"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	ErrorCount  int        `json:"error_count"`
}
