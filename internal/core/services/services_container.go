package services

import (
	portsrepo "github.com/psanthosh/simple_bank_system/internal/core/ports/repositories"
	portssvc "github.com/psanthosh/simple_bank_system/internal/core/ports/services"
	"github.com/psanthosh/simple_bank_system/internal/platform/config"
	"github.com/psanthosh/simple_bank_system/internal/platform/locking"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.TransactionRepo)

	// One lock set per process; every transaction goes through it before
	// touching storage.
	locks := locking.NewKeyedMutex()
	container.Transaction = NewTransactionService(repos.AccountRepo, repos.Store, locks, cfg.LockWaitTimeout)

	return container
}
