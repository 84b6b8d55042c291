package inmemory

import (
	"context"
	"sync"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
)

type vaultRepositoryImpl struct {
	lock  sync.RWMutex
	vault *domain.Vault
}

// NewVaultRepositoryImpl returns an in-memory implementation of the
// domain.VaultRepository
func NewVaultRepositoryImpl() domain.VaultRepository {
	return &vaultRepositoryImpl{}
}

func (r *vaultRepositoryImpl) GetVault(
	ctx context.Context,
) (*domain.Vault, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.vault == nil {
		return nil, nil
	}
	vault := *r.vault
	return &vault, nil
}

func (r *vaultRepositoryImpl) InitVault(
	ctx context.Context, vault *domain.Vault,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.vault != nil {
		return domain.ErrWalletAlreadyInitialized
	}
	v := *vault
	r.vault = &v
	return nil
}

func (r *vaultRepositoryImpl) UpdateVault(
	ctx context.Context,
	updateFn func(*domain.Vault) (*domain.Vault, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.vault == nil {
		return domain.ErrWalletNotInitialized
	}

	vault := *r.vault
	updated, err := updateFn(&vault)
	if err != nil {
		return err
	}
	r.vault = updated
	return nil
}

func (r *vaultRepositoryImpl) ResetVault(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.vault = nil
	return nil
}
