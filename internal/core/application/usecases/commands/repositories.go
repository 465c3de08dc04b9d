// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tracker/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// StatusRepoFactory provides access to the status definition repository
	// within a transaction.
	StatusRepoFactory interface {
		StatusDefinitionRepository() ports.StatusDefinitionRepository
	}

	// HistoryRepoFactory provides access to the history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// ParcelUoW manages transactions for parcel-and-history operations.
	// Used by commands that never touch the status vocabulary.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		HistoryRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// UoW manages transactions across parcels, their history, and the status
	// vocabulary. The status update use case needs all three: the parcel row,
	// the appended history entry, and the requested status definition must be
	// read and written under one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcels := uow.ParcelRepository()
	//   history := uow.HistoryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		StatusRepoFactory
		HistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
