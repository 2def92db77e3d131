package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer, so wiring swaps storage backends in one place.
type RepositoryProvider struct {
	AccountRepo     AccountRepository
	TransactionRepo TransactionRepository
	Store           TransactionStore
}
