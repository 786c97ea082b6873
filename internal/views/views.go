// Package views renders the portal pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var files embed.FS

// Page names. Each page is parsed together with its layout.
const (
	Home            = "home"
	Hackathons      = "hackathons"
	Hackathon       = "hackathon"
	Projects        = "projects"
	Project         = "project"
	Profile         = "profile"
	SubmitProject   = "submit_project"
	CreateHackathon = "create_hackathon"
	Login           = "login"
	Register        = "register"
	Message         = "message"
)

var layouts = map[string]string{
	Home:            "layout",
	Hackathons:      "layout",
	Hackathon:       "layout",
	Projects:        "layout",
	Project:         "layout",
	Profile:         "layout",
	SubmitProject:   "layout",
	CreateHackathon: "layout",
	Message:         "layout",
	Login:           "bare",
	Register:        "bare",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"shortDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2")
	},
}

// Renderer implements gin's render.HTMLRender over per-page template sets.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(layouts))}
	for page, layout := range layouts {
		t, err := template.New(page).Funcs(funcs).ParseFS(files,
			"templates/"+layout+".html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		return render.String{Format: "unknown page %q", Data: []any{name}}
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}
