// Package upload sends images to a third-party host before a form that
// references them is submitted.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Host stores an image and returns its public https URL.
type Host interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type State int

const (
	Idle State = iota
	Uploading
	Uploaded
	Failed
)

func (s State) String() string {
	switch s {
	case Uploading:
		return "uploading"
	case Uploaded:
		return "uploaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrBusy is returned when an upload is started while another is running.
var ErrBusy = errors.New("an upload is already in progress")

// FailedMessage is what the form shows after a failed upload.
const FailedMessage = "Failed to upload image. Please try again."

// Tracker runs one image through Idle → Uploading → {Uploaded, Failed}.
// A failed upload is not retried; the caller starts a new one.
type Tracker struct {
	host  Host
	state State
	url   string
	err   error
}

func NewTracker(host Host) *Tracker {
	return &Tracker{host: host}
}

func (t *Tracker) State() State { return t.state }
func (t *Tracker) URL() string  { return t.url }
func (t *Tracker) Err() error   { return t.err }

// Upload sends r to the host and records the secure URL.
func (t *Tracker) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if t.state == Uploading {
		return "", ErrBusy
	}
	t.state, t.url, t.err = Uploading, "", nil

	url, err := t.host.Upload(ctx, filename, r)
	if err == nil && url == "" {
		err = errors.New("image host returned no URL")
	}
	if err != nil {
		slog.Error("Image upload failed", "file", filename, "error", err)
		t.state, t.err = Failed, err
		return "", err
	}

	slog.Info("Image uploaded", "file", filename, "url", url)
	t.state, t.url = Uploaded, url
	return url, nil
}
