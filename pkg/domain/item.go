package domain

import "time"

// Item represents a single entry of a source: a story, a post or a shot
type Item struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Page      int       `json:"page"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Author    string    `json:"author,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Published time.Time `json:"published"`
	Votes     int       `json:"votes"`
	Comments  int       `json:"comments"`
}

// Page is one batch of items fetched from a source, in the order the source returned them
type Page struct {
	Source string
	Number int // 0-based
	Items  []Item
}

// WeighedItem is an item together with the sort weight assigned by the merger.
// Lower weight sorts earlier.
type WeighedItem struct {
	Item
	Weight float64 `json:"weight"`
}
