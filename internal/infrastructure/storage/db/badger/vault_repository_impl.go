package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
)

// the vault is a singleton record, always stored under the same key
const vaultKey = "vault"

type vaultRepositoryImpl struct {
	store *badgerhold.Store
}

// NewVaultRepositoryImpl initialize a badger implementation of the
// domain.VaultRepository
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return vaultRepositoryImpl{store: store}
}

func (r vaultRepositoryImpl) GetVault(
	ctx context.Context,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := r.store.Get(vaultKey, &vault); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vault, nil
}

func (r vaultRepositoryImpl) InitVault(
	ctx context.Context, vault *domain.Vault,
) error {
	if err := r.store.Insert(vaultKey, *vault); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrWalletAlreadyInitialized
		}
		return err
	}
	return nil
}

func (r vaultRepositoryImpl) UpdateVault(
	ctx context.Context,
	updateFn func(*domain.Vault) (*domain.Vault, error),
) error {
	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var vault domain.Vault
	if err := r.store.TxGet(tx, vaultKey, &vault); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrWalletNotInitialized
		}
		return err
	}

	updated, err := updateFn(&vault)
	if err != nil {
		return err
	}

	if err := r.store.TxUpdate(tx, vaultKey, *updated); err != nil {
		return err
	}
	return tx.Commit()
}

func (r vaultRepositoryImpl) ResetVault(ctx context.Context) error {
	if err := r.store.Delete(vaultKey, domain.Vault{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}
