package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql-backed repositories over one pool.
// lockTimeout bounds how long a ledger unit of work waits on account row locks.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	signalRepo := newPgxSignalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       NewTransactionManager(dbPool, lockTimeout),
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BudgetRepo:      newPgxBudgetRepository(dbPool),
		GoalRepo:        newPgxGoalRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		AlertRepo:       signalRepo,
		RecRepo:         signalRepo,
		AuditRepo:       signalRepo,
	}
}
