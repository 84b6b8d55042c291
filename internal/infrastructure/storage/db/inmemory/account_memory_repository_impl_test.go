package inmemory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/infrastructure/storage/db/inmemory"
)

func newAccount(t *testing.T, name string, index int) *domain.Account {
	t.Helper()

	account, err := domain.NewDerivedAccount(
		name, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		"m/44'/60'/0'/0/0", index,
	)
	require.NoError(t, err)
	return account
}

func TestAccountRepository(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewRepoManager().AccountRepository()
	ctx := context.Background()

	first := newAccount(t, "First", 0)
	second := newAccount(t, "Second", 1)
	require.NoError(t, repo.AddAccount(ctx, first))
	require.NoError(t, repo.AddAccount(ctx, second))

	err := repo.AddAccount(ctx, first)
	require.EqualError(t, err, domain.ErrAccountAlreadyExists.Error())

	accounts, err := repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "First", accounts[0].Name)

	require.NoError(t, repo.SetActiveAccount(ctx, second.ID))
	active, err := repo.GetActiveAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)

	err = repo.UpdateAccount(
		ctx, first.ID, func(a *domain.Account) (*domain.Account, error) {
			a.Name = "Renamed"
			return a, nil
		},
	)
	require.NoError(t, err)
	found, err := repo.GetAccount(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", found.Name)

	require.NoError(t, repo.DeleteAccount(ctx, first.ID))
	accounts, err = repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	err = repo.DeleteAccount(ctx, first.ID)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestVaultRepository(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewRepoManager().VaultRepository()
	ctx := context.Background()

	vault, err := repo.GetVault(ctx)
	require.NoError(t, err)
	require.Nil(t, vault)

	mnemonic := []string{
		"abandon", "abandon", "abandon", "abandon", "abandon", "abandon",
		"abandon", "abandon", "abandon", "abandon", "abandon", "about",
	}
	newVault, err := domain.NewVault(mnemonic, "1234")
	require.NoError(t, err)
	require.NoError(t, repo.InitVault(ctx, newVault))

	err = repo.InitVault(ctx, newVault)
	require.EqualError(t, err, domain.ErrWalletAlreadyInitialized.Error())

	err = repo.UpdateVault(
		ctx, func(v *domain.Vault) (*domain.Vault, error) {
			v.BiometricsEnabled = true
			return v, nil
		},
	)
	require.NoError(t, err)

	vault, err = repo.GetVault(ctx)
	require.NoError(t, err)
	require.True(t, vault.BiometricsEnabled)

	require.NoError(t, repo.ResetVault(ctx))
	vault, err = repo.GetVault(ctx)
	require.NoError(t, err)
	require.Nil(t, vault)
}
