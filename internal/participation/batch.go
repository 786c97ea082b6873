// Package participation tracks whether the current user joined hackathons
// and drives the "Participate" action.
package participation

import (
	"context"
	"log/slog"
	"sync"

	"hackafrica-web/internal/models"

	"golang.org/x/sync/errgroup"
)

// Status of one hackathon card.
type Status int

const (
	Unknown Status = iota
	Checking
	Participating
	NotParticipating
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Participating:
		return "participating"
	case NotParticipating:
		return "not-participating"
	default:
		return "unknown"
	}
}

// Checker asks the backend about one hackathon.
type Checker interface {
	CheckParticipation(ctx context.Context, hackathonID string) (bool, error)
}

// DefaultLimit caps concurrent checks when none is configured.
const DefaultLimit = 4

// CheckAll returns one entry per hackathon id. Checks run at most limit at a
// time; a failed check counts as not participating and never stops the rest.
// When ctx ends, outstanding checks are abandoned, their entries stay false and
// ctx's error is returned alongside the complete map.
func CheckAll(ctx context.Context, api Checker, hackathons []models.Hackathon, limit int) (map[string]bool, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	status := make(map[string]bool, len(hackathons))
	for _, h := range hackathons {
		status[h.ID] = false
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(limit)

	for _, h := range hackathons {
		id := h.ID
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			ok, err := api.CheckParticipation(ctx, id)
			if err != nil {
				slog.Debug("Participation check failed, assuming not participating", "hackathon", id, "error", err)
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			mu.Lock()
			status[id] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return status, ctx.Err()
}

// Of maps a batch result to the card status. Hackathons absent from the map
// were never checked.
func Of(status map[string]bool, hackathonID string) Status {
	ok, found := status[hackathonID]
	switch {
	case !found:
		return Unknown
	case ok:
		return Participating
	default:
		return NotParticipating
	}
}
