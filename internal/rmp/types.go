package rmp

import "strings"

// School identifies the institution a teacher record belongs to.
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Teacher is a normalized rating record returned by the search API.
// Metric fields may be absent upstream, in which case they decode as zero.
type Teacher struct {
	ID                    string  `json:"id"`
	LegacyID              int64   `json:"legacyId"`
	FirstName             string  `json:"firstName"`
	LastName              string  `json:"lastName"`
	Department            string  `json:"department"`
	School                School  `json:"school"`
	AvgRating             float64 `json:"avgRating"`
	AvgDifficulty         float64 `json:"avgDifficulty"`
	NumRatings            int     `json:"numRatings"`
	WouldTakeAgainPercent float64 `json:"wouldTakeAgainPercent"`
}

// FullName joins the first and last name, tolerating missing parts.
func (t Teacher) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(t.FirstName) + " " + strings.TrimSpace(t.LastName))
}
