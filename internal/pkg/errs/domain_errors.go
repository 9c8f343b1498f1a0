package errs

import "errors"

// Operation-level sentinel errors shared by the infra and usecase layers
var (
	// Durability errors
	ErrJournalWriteFailed = errors.New("journal write failed")
	ErrJournalReplay      = errors.New("journal replay failed")

	// Archive errors
	ErrArchiveFailed = errors.New("archive operation failed")
)
