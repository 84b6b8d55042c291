package domain

import "context"

// VaultRepository is the interface for the persisted vault record. At most
// one vault exists per install.
type VaultRepository interface {
	// GetVault returns the vault record, or nil if the wallet has never been
	// initialized.
	GetVault(ctx context.Context) (*Vault, error)
	// InitVault stores the vault record of a freshly created or imported
	// wallet. Returns ErrWalletAlreadyInitialized if one exists.
	InitVault(ctx context.Context, vault *Vault) error
	// UpdateVault applies updateFn to the stored vault and persists the
	// result within a single transaction. Returns ErrWalletNotInitialized if
	// no vault exists.
	UpdateVault(
		ctx context.Context,
		updateFn func(*Vault) (*Vault, error),
	) error
	// ResetVault erases the vault record. A missing record is not an error.
	ResetVault(ctx context.Context) error
}
