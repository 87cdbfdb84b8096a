package domain

import "errors"

var (
	// ErrMissingCredential is returned when an operation that talks to a
	// remote collaborator is attempted without an access token.
	ErrMissingCredential = errors.New("domain: missing access token")

	// ErrInvalidAnswer is returned when a selection is not among the
	// current question's declared options (or outside its range).
	ErrInvalidAnswer = errors.New("domain: invalid answer")

	// ErrQuizNotComplete is returned when a finalized answer set is
	// requested before the last question has been answered.
	ErrQuizNotComplete = errors.New("domain: quiz not complete")

	// ErrQuizComplete is returned when a select event arrives after the
	// machine has already reached its terminal state.
	ErrQuizComplete = errors.New("domain: quiz already complete")

	// ErrGenerationFailed wraps any failure of the generation collaborator.
	// The run stays recoverable; callers may retry with the same arguments.
	ErrGenerationFailed = errors.New("domain: generation failed")

	// ErrExportFailed wraps any failure of the export collaborator.
	ErrExportFailed = errors.New("domain: export failed")

	// ErrExportInFlight rejects an export while a prior export for the
	// same run is still outstanding.
	ErrExportInFlight = errors.New("domain: export already in flight")

	// ErrEmptyResult guards against publishing a vibe result with no tracks.
	ErrEmptyResult = errors.New("domain: empty vibe result")

	// ErrNoTracks rejects an export with an empty track list before any
	// remote call is made.
	ErrNoTracks = errors.New("domain: no tracks to export")

	// ErrRunNotFound is returned for an unknown run identifier.
	ErrRunNotFound = errors.New("domain: run not found")

	// ErrNotFound is the generic absent-row sentinel for stores.
	ErrNotFound = errors.New("domain: not found")
)
