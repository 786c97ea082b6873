package views

import (
	"time"

	"hackafrica-web/internal/models"
	"hackafrica-web/internal/participation"
	"hackafrica-web/internal/session"
	"hackafrica-web/internal/submission"
	"hackafrica-web/internal/upload"
)

// NavItem is one entry of the side menu.
type NavItem struct {
	Path   string
	Label  string
	Active bool
}

// Page is the data every shell page shares.
type Page struct {
	Title   string
	Session session.Session
	Nav     []NavItem
	Flash   string
	Search  string
	Year    int
	Error   string
}

type HomePage struct {
	Page
	Hackathons []HackathonCard
	Projects   []models.Project
}

// HackathonCard is a hackathon with the state derived for this render.
type HackathonCard struct {
	models.Hackathon
	Active bool
	Status participation.Status
}

func (c HackathonCard) Participating() bool {
	return c.Status == participation.Participating
}

type HackathonsPage struct {
	Page
	Cards []HackathonCard
	Query string
}

type HackathonPage struct {
	Page
	Card     HackathonCard
	NotFound bool
}

type ProjectsPage struct {
	Page
	Projects []models.Project
	// Banner is set while the "project created" notice is still fresh.
	Banner        bool
	BannerRemains time.Duration
}

// BannerMillis feeds the auto-dismiss timer of the banner.
func (p ProjectsPage) BannerMillis() int64 {
	return p.BannerRemains.Milliseconds()
}

type ProjectPage struct {
	Page
	Project models.Project
}

type ProfilePage struct {
	Page
	User     models.User
	Projects []models.Project
}

type SubmitProjectPage struct {
	Page
	Hackathon models.Hackathon
	Draft     submission.ProjectDraft
}

type CreateHackathonPage struct {
	Page
	Draft       submission.HackathonDraft
	UploadState upload.State
}

func (p CreateHackathonPage) Uploaded() bool {
	return p.UploadState == upload.Uploaded || p.Draft.ImageURL != ""
}

type AuthPage struct {
	Page
	Email string
	Name  string
	Role  string
}

type MessagePage struct {
	Page
	Heading string
	Text    string
}
