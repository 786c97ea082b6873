package participation

import (
	"context"
	"errors"
	"log/slog"

	"hackafrica-web/internal/apiclient"
)

// Joiner registers the current user for a hackathon.
type Joiner interface {
	Participate(ctx context.Context, hackathonID string) (apiclient.ParticipateResult, error)
}

// Stasher remembers a hackathon to join once the user logged in.
type Stasher interface {
	StashPending(ctx context.Context, hackathonID string) error
}

// StashFunc adapts a function to Stasher.
type StashFunc func(ctx context.Context, hackathonID string) error

func (f StashFunc) StashPending(ctx context.Context, hackathonID string) error {
	return f(ctx, hackathonID)
}

// Outcome tells the view where to go next and what to tell the user. An
// empty Redirect means stay on the current page.
type Outcome struct {
	Redirect string
	Notice   string
}

const (
	NoticeLogin    = "Please login to participate"
	NoticeFailed   = "Failed to participate. Please try again."
	NoticeNotFound = "Hackathon not found"
	NoticeGeneric  = "Participation error"
	NoticeNetwork  = "Network error. Please check your connection."
)

// SubmitPath is where a successful participation leads.
func SubmitPath(hackathonID string) string {
	return "/submit-project/" + hackathonID
}

// Join runs the "Participate" action. Without a token the id is stashed and
// the user is sent to log in; the participate endpoint is not called.
func Join(ctx context.Context, api Joiner, stash Stasher, hasToken bool, hackathonID string) Outcome {
	if !hasToken {
		if err := stash.StashPending(ctx, hackathonID); err != nil {
			slog.Error("Failed to stash pending participation", "hackathon", hackathonID, "error", err)
		}
		return Outcome{Redirect: "/login"}
	}

	res, err := api.Participate(ctx, hackathonID)
	switch {
	case err == nil && res.Success:
		return Outcome{Redirect: SubmitPath(hackathonID)}
	case err == nil:
		slog.Warn("Participation refused", "hackathon", hackathonID, "message", res.Message)
		return Outcome{Notice: NoticeFailed}
	case errors.Is(err, apiclient.ErrUnauthorized):
		return Outcome{Redirect: "/login", Notice: NoticeLogin}
	case errors.Is(err, apiclient.ErrNotFound):
		return Outcome{Notice: NoticeNotFound}
	case errors.Is(err, apiclient.ErrNetworkUnavailable):
		return Outcome{Notice: NoticeNetwork}
	default:
		return Outcome{Notice: apiclient.MessageOr(err, NoticeGeneric)}
	}
}
