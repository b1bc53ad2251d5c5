package memory

import (
	"context"

	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/unitofwork"
)

type unitOfWork struct {
	store *Store
	snap  *snapshot // non-nil while a transaction is open
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.snap != nil {
		return unitofwork.ErrTxStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	u.snap = u.store.snapshot()
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.snap == nil {
		return unitofwork.ErrNoTx
	}
	u.snap = nil
	u.store.mu.Unlock()
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.snap == nil {
		return unitofwork.ErrNoTx
	}
	u.store.restore(u.snap)
	u.snap = nil
	u.store.mu.Unlock()
	return nil
}

func (u *unitOfWork) repoView() view {
	if u.snap != nil {
		return view{store: u.store, lock: nopLocker{}}
	}
	return view{store: u.store, lock: &u.store.mu}
}

func (u *unitOfWork) SessionRepository() contract.SessionRepository {
	return &sessionRepository{u.repoView()}
}

func (u *unitOfWork) MessageRepository() contract.MessageRepository {
	return &messageRepository{u.repoView()}
}

func (u *unitOfWork) MetamessageRepository() contract.MetamessageRepository {
	return &metamessageRepository{u.repoView()}
}

func (u *unitOfWork) CollectionRepository() contract.CollectionRepository {
	return &collectionRepository{u.repoView()}
}

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &documentRepository{u.repoView()}
}

type repositoryFactory struct {
	store *Store
}

// NewRepositoryFactory serves units of work over one in-process store.
func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// Ping always succeeds; the store lives in this process.
func (f *repositoryFactory) Ping(ctx context.Context) error {
	return ctx.Err()
}
