package ports

import (
	"context"

	"wallet-topup-service/internal/core/domain"
)

// WalletRepository defines persistence operations against the partitioned
// key-value ledger. Both write operations are atomic all-or-nothing and
// guarded by the (userId, transactionId) precondition; duplicate ids surface
// as domain.OutcomeAlreadyApplied, never as an error.
type WalletRepository interface {
	// GetWallet returns the user's wallet, or nil when none exists yet.
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)

	// CreateWalletAndTransaction atomically writes the transaction record
	// and, for a successful entry, the new wallet with its balance
	// initialised to the entry amount in minor units. If the wallet was
	// created concurrently the write degrades to a balance increment
	// inside the same atomic operation.
	CreateWalletAndTransaction(ctx context.Context, n *domain.TopupNotification) (domain.ApplyOutcome, error)

	// RecordTransaction atomically appends the transaction record and, for
	// a successful entry, increments the wallet balance. The increment is a
	// single storage-side operation; there is no read-modify-write of the
	// previous balance.
	RecordTransaction(ctx context.Context, n *domain.TopupNotification) (domain.ApplyOutcome, error)

	// ListTransactions pages through a user's transaction log in sort-key
	// order.
	ListTransactions(ctx context.Context, q TransactionListQuery) (*TransactionPage, error)
}

// TransactionListQuery holds the listing parameters.
type TransactionListQuery struct {
	UserID string
	Sort   string // "asc" (default) or "desc"
	Cursor string // opaque cursor from a previous page, empty for the first
	Limit  int    // items per page; <=0 falls back to the repository default
}

// TransactionPage is one page of the transaction log.
type TransactionPage struct {
	Items []domain.Transaction
	// LastEvaluatedKey is the opaque cursor for the next page, empty when
	// the page may be the last one.
	LastEvaluatedKey string
}

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "redis").
	Name() string
}
