package publish

import (
	"errors"
	"fmt"
)

// ErrNoFolder is returned when no local folder was selected.
var ErrNoFolder = errors.New("no folder selected")

// ValidationError reports a local input problem. It is always raised before
// the bucket is touched.
type ValidationError struct {
	Folder string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Folder == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %v", e.Folder, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Phase is a step of a publish run that talks to the bucket.
type Phase string

const (
	PhaseDelete    Phase = "delete"
	PhaseUpload    Phase = "upload"
	PhaseConfigure Phase = "configure"
)

// PhaseError reports a failed publish phase.
type PhaseError struct {
	Phase Phase
	// Key is the object key being processed, if any.
	Key string
	// Partial is set when the run already changed the bucket before failing.
	// Nothing is rolled back.
	Partial bool
	Err     error
}

// Message is the short text shown to the user.
func (e *PhaseError) Message() string {
	switch e.Phase {
	case PhaseDelete:
		return "failed to delete"
	case PhaseUpload:
		return "failed to upload"
	case PhaseConfigure:
		return "failed to configure hosting"
	default:
		return "failed to publish"
	}
}

func (e *PhaseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Message(), e.Key, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
