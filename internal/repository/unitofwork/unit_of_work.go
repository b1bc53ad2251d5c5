package unitofwork

import (
	"context"
	"errors"

	"chat-memory-be/internal/repository/contract"
)

// RepositoryFactory hands out one UnitOfWork per service operation.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// UnitOfWork groups repository calls into one transaction. Outside Begin the
// repositories run in autocommit mode against the shared handle.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	MessageRepository() contract.MessageRepository
	MetamessageRepository() contract.MetamessageRepository
	CollectionRepository() contract.CollectionRepository
	DocumentRepository() contract.DocumentRepository
}

// ErrTxStarted and ErrNoTx report misuse of Begin/Commit/Rollback.
var (
	ErrTxStarted = errors.New("transaction already started")
	ErrNoTx      = errors.New("no transaction in progress")
)
