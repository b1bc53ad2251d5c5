package contract

import "errors"

// Store-level integrity errors. Implementations wrap driver errors into these so
// the service layer can classify them without knowing the backend.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
)
