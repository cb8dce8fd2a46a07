package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnknownStyle     = errors.New("unknown style")
	ErrMissingReference = errors.New("missing required reference image")
	ErrEmptyBrief       = errors.New("empty shot brief")
	ErrNoImageInReply   = errors.New("no image in response")
	ErrLinkReturned     = errors.New("link returned instead of image")
	ErrTransport        = errors.New("transport failure")
)

// ShotError tags a generation failure with the index of the shot it belongs
// to, so callers can report per-shot status without aborting sibling shots.
type ShotError struct {
	Index int
	Err   error
}

func (e *ShotError) Error() string {
	return fmt.Sprintf("shot %d: %v", e.Index, e.Err)
}

func (e *ShotError) Unwrap() error {
	return e.Err
}
