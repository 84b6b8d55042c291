package domain

import "context"

// AccountRepository is the interface for the persisted account registry.
// Mutations are atomic at the storage level; serializing concurrent
// mutations is the caller's duty.
type AccountRepository interface {
	// AddAccount appends a new account to the registry.
	AddAccount(ctx context.Context, account *Account) error
	// GetAccount returns the account with the given id, or ErrAccountNotFound.
	GetAccount(ctx context.Context, id string) (*Account, error)
	// GetAllAccounts returns every account ordered by creation time. An empty
	// registry yields an empty list, not an error.
	GetAllAccounts(ctx context.Context) ([]Account, error)
	// GetActiveAccount returns the account flagged as active, or nil if the
	// registry is empty.
	GetActiveAccount(ctx context.Context) (*Account, error)
	// UpdateAccount applies updateFn to the account with the given id and
	// persists the result within a single transaction.
	UpdateAccount(
		ctx context.Context, id string,
		updateFn func(*Account) (*Account, error),
	) error
	// SetActiveAccount clears the active flag on every account and sets it on
	// the one with the given id, all within a single transaction.
	SetActiveAccount(ctx context.Context, id string) error
	// DeleteAccount removes the account with the given id.
	DeleteAccount(ctx context.Context, id string) error
}
