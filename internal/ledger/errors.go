package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence wraps every failure to load or save the ledger.
	ErrPersistence = errors.New("ledger: persistence failure")

	ErrUnknownCommand = errors.New("ledger: unknown command")
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
