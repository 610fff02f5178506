package unitofwork

import (
	"context"

	"ai-tutor-be/internal/repository/contract"
)

// UnitOfWork groups repository calls into one transaction. Callers Begin,
// defer Rollback and Commit on success; Rollback after Commit is a no-op.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
}

// RepositoryFactory hands out one UnitOfWork per operation. Both the gorm and
// the memory store implement it.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
