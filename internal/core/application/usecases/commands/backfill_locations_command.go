package commands

import (
	"errors"

	"tracker/internal/pkg/guard"
)

var (
	ErrBackfillLocationsCommandIsNotConstructed = errors.New(
		"BackfillLocationsCommand must be created via NewBackfillLocationsCommand constructor",
	)
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// BackfillLocationsCommand represents a request to resolve coordinates for
// delivered parcels that have none, typically issued by the background job.
type BackfillLocationsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewBackfillLocationsCommand creates a backfill command for at most
// batchSize parcels per run.
func NewBackfillLocationsCommand(batchSize int) (BackfillLocationsCommand, error) {
	cmd := BackfillLocationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchSize(batchSize); err != nil {
		return BackfillLocationsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBackfillLocationsCommandIsNotConstructed if validation fails.
func (c BackfillLocationsCommand) Validate() error {
	return c.guard.Validate(ErrBackfillLocationsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of parcels processed per run.
func (c BackfillLocationsCommand) BatchSize() int {
	return c.batchSize
}

func (c *BackfillLocationsCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return ErrBatchSizeIsInvalid
	}

	c.batchSize = batchSize
	return nil
}
