package ports

import "github.com/etherkeep/etherkeep-daemon/internal/core/domain"

// RepoManager gives access to every domain repository backed by the same
// storage and allows to close the underlying connection in one shot.
type RepoManager interface {
	// AccountRepository returns the account registry repository.
	AccountRepository() domain.AccountRepository
	// VaultRepository returns the vault record repository.
	VaultRepository() domain.VaultRepository
	// Close closes the connection with the storage.
	Close()
}
