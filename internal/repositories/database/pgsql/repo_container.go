package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the Postgres-backed repository set.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	txnRepo := NewTransactionRepository(pool)
	return portsrepo.RepositoryProvider{
		AccountRepo:     NewAccountRepository(pool),
		TransactionRepo: txnRepo,
		Store:           txnRepo,
	}
}
