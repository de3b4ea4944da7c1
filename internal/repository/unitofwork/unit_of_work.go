package unitofwork

import (
	"context"

	"smart-blog-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PostRepository() contract.PostRepository
}
