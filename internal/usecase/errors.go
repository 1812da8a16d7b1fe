package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// NoteNoMatches is the message surfaced when a club has neither a completed
// nor an upcoming match to show.
const NoteNoMatches = "Aucun match disponible"

// UpstreamError carries an HTTP status returned by the federation API so
// callers can react to specific codes, 404 in particular.
type UpstreamError struct {
	Status int
	Msg    string
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("federation status=%d: %s: %s", e.Status, e.Msg, e.Detail)
	}
	return fmt.Sprintf("federation status=%d: %s", e.Status, e.Msg)
}

// UpstreamStatus extracts the federation HTTP status from an error chain.
func UpstreamStatus(err error) (int, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Status, true
	}
	return 0, false
}

// IsUpstreamNotFound reports whether the federation answered 404 for the
// requested resource.
func IsUpstreamNotFound(err error) bool {
	status, ok := UpstreamStatus(err)
	return ok && status == 404
}
