package submission

import (
	"context"
	"time"

	"hackafrica-web/internal/forms"
	"hackafrica-web/internal/models"
)

const (
	dateLayout = "2006-01-02"

	// MsgImageRequired is shown when the form is submitted before an image upload succeeded.
	MsgImageRequired = "Please upload an image for the hackathon."
)

// HackathonDraft is the create-hackathon form. ImageURL is filled by the
// upload step and must be present before anything is sent.
type HackathonDraft struct {
	ImageURL    string `form:"imageUrl" validate:"required,url" msg:"Please upload an image for the hackathon."`
	Title       string `form:"title" validate:"notblank" msg:"Title is required"`
	Description string `form:"description" validate:"notblank" msg:"Description is required"`
	StartDate   string `form:"startDate" validate:"datetime=2006-01-02" msg:"Start date must be a valid date"`
	EndDate     string `form:"endDate" validate:"datetime=2006-01-02" msg:"End date must be a valid date"`
	Rules       string `form:"rules" validate:"notblank" msg:"Rules are required"`
	Prizes      string `form:"prizes" validate:"notblank" msg:"Prizes are required"`
}

// HackathonCreator is the backend call behind the form.
type HackathonCreator interface {
	CreateHackathon(ctx context.Context, in models.NewHackathon) (models.Hackathon, error)
}

// ValidateHackathon runs the client-side checks of the create form.
func ValidateHackathon(d HackathonDraft) error {
	if err := forms.Validate(d); err != nil {
		return err
	}
	start, _ := time.Parse(dateLayout, d.StartDate)
	end, _ := time.Parse(dateLayout, d.EndDate)
	if end.Before(start) {
		return &forms.ValidationError{Field: "endDate", Message: "End date must not be before the start date"}
	}
	return nil
}

// CreateHackathon validates d and, only if it passes, creates the hackathon.
func CreateHackathon(ctx context.Context, api HackathonCreator, d HackathonDraft) (models.Hackathon, error) {
	if err := ValidateHackathon(d); err != nil {
		return models.Hackathon{}, err
	}
	return api.CreateHackathon(ctx, models.NewHackathon{
		Title:       d.Title,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Rules:       d.Rules,
		Prizes:      d.Prizes,
		ImageURL:    d.ImageURL,
	})
}
