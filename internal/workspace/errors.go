package workspace

import "errors"

var (
	// ErrBusy is returned when an analysis or search is already in flight.
	ErrBusy = errors.New("an operation is already in progress")
	// ErrNoDraft is returned by Save when nothing has been analyzed.
	ErrNoDraft = errors.New("no pending candidate to save")
	// ErrEmptyInput is returned by Analyze for blank resume text.
	ErrEmptyInput = errors.New("resume text is empty")
	// ErrEmptyQuery is returned by Search for a blank query.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrNotConfirmed is returned by Delete when the user declines.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)
