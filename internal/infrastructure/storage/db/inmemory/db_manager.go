package inmemory

import (
	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
)

type repoManager struct {
	accountRepository domain.AccountRepository
	vaultRepository   domain.VaultRepository
}

// NewRepoManager returns an in-memory implementation of ports.RepoManager,
// meant for tests and dry runs.
func NewRepoManager() ports.RepoManager {
	return &repoManager{
		accountRepository: NewAccountRepositoryImpl(),
		vaultRepository:   NewVaultRepositoryImpl(),
	}
}

func (d *repoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *repoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *repoManager) Close() {}
