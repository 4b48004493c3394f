package postgres

import (
	"context"
	"errors"

	"libraryapi/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork implements UnitOfWork interface
type unitOfWork struct {
	db *pgxpool.Pool
}

// NewUnitOfWork creates a new unit of work
func NewUnitOfWork(db *pgxpool.Pool) repositories.UnitOfWork {
	return &unitOfWork{db: db}
}

// Begin starts a new transaction
func (uow *unitOfWork) Begin(ctx context.Context) (repositories.Transaction, error) {
	tx, err := uow.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &transaction{tx: tx}, nil
}

// transaction implements Transaction interface
type transaction struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction; it is a no-op once committed.
func (t *transaction) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// AuthorRepository returns an author repository bound to the transaction
func (t *transaction) AuthorRepository() repositories.AuthorRepository {
	return &AuthorRepository{db: t.tx}
}

// BookRepository returns a book repository bound to the transaction
func (t *transaction) BookRepository() repositories.BookRepository {
	return &BookRepository{db: t.tx}
}
