package models

import "time"

// Project is a hackathon submission.
type Project struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DemoURL     string    `json:"demoUrl"`
	ImageURL    string    `json:"imageUrl"`
	Hackathon   *Ref      `json:"hackathon,omitempty"`
	Team        []Ref     `json:"team"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TeamLabel renders the team size the way list cards show it.
func (p Project) TeamLabel() string {
	switch n := len(p.Team); n {
	case 0:
		return ""
	case 1:
		return "1 Member"
	default:
		return itoa(n) + " Members"
	}
}

// NewProject is the payload of the submit-project call.
type NewProject struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DemoURL     string   `json:"demoUrl"`
	ImageURL    string   `json:"imageUrl"`
	Team        []string `json:"team"`
	Hackathon   string   `json:"hackathon"`
}
