package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Hackathon is an event as served by the hackathon backend.
type Hackathon struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Rules       string    `json:"rules"`
	Prizes      string    `json:"prizes"`
	ImageURL    string    `json:"imageUrl"`
}

// dateLayouts are tried in order. Records created through the portal's
// form carry plain calendar dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate reads a backend date. Empty or unreadable values yield the zero
// time so one bad record never rejects a whole listing.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (h *Hackathon) UnmarshalJSON(b []byte) error {
	type plain Hackathon
	var raw struct {
		plain
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*h = Hackathon(raw.plain)
	h.StartDate = ParseDate(raw.StartDate)
	h.EndDate = ParseDate(raw.EndDate)
	return nil
}

// IsActive reports whether the hackathon is still running at now.
// It is derived on every call and never stored. A missing end date counts
// as ended.
func (h Hackathon) IsActive(now time.Time) bool {
	return !h.EndDate.IsZero() && h.EndDate.After(now)
}

// NewHackathon is the payload of the create-hackathon call. Dates are the
// YYYY-MM-DD values of the form's date inputs.
type NewHackathon struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Rules       string `json:"rules"`
	Prizes      string `json:"prizes"`
	ImageURL    string `json:"imageUrl"`
}
