package dbbadger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	dbbadger "github.com/etherkeep/etherkeep-daemon/internal/infrastructure/storage/db/badger"
)

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func newTestAccount(t *testing.T, name string, index int) *domain.Account {
	t.Helper()

	account, err := domain.NewDerivedAccount(
		name, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		"m/44'/60'/0'/0/0", index,
	)
	require.NoError(t, err)
	return account
}

func TestAddAndGetAccount(t *testing.T) {
	repo := newTestRepoManager(t).AccountRepository()
	ctx := context.Background()

	account := newTestAccount(t, "Account 1", 0)
	require.NoError(t, repo.AddAccount(ctx, account))

	err := repo.AddAccount(ctx, account)
	require.EqualError(t, err, domain.ErrAccountAlreadyExists.Error())

	found, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, account.Name, found.Name)
	require.Equal(t, account.Address, found.Address)

	_, err = repo.GetAccount(ctx, "unknown")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestGetAllAccounts(t *testing.T) {
	repo := newTestRepoManager(t).AccountRepository()
	ctx := context.Background()

	accounts, err := repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Empty(t, accounts)

	first := newTestAccount(t, "First", 0)
	second := newTestAccount(t, "Second", 1)
	require.NoError(t, repo.AddAccount(ctx, first))
	require.NoError(t, repo.AddAccount(ctx, second))

	accounts, err = repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "First", accounts[0].Name)
	require.Equal(t, "Second", accounts[1].Name)
}

func TestSetActiveAccount(t *testing.T) {
	repo := newTestRepoManager(t).AccountRepository()
	ctx := context.Background()

	active, err := repo.GetActiveAccount(ctx)
	require.NoError(t, err)
	require.Nil(t, active)

	first := newTestAccount(t, "First", 0)
	second := newTestAccount(t, "Second", 1)
	require.NoError(t, repo.AddAccount(ctx, first))
	require.NoError(t, repo.AddAccount(ctx, second))

	err = repo.SetActiveAccount(ctx, "unknown")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())

	require.NoError(t, repo.SetActiveAccount(ctx, first.ID))
	require.NoError(t, repo.SetActiveAccount(ctx, second.ID))

	// exactly one account is active after consecutive switches
	active, err = repo.GetActiveAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)

	accounts, err := repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, a := range accounts {
		if a.Active {
			activeCount++
		}
	}
	require.Equal(t, 1, activeCount)
}

func TestUpdateAccount(t *testing.T) {
	repo := newTestRepoManager(t).AccountRepository()
	ctx := context.Background()

	account := newTestAccount(t, "Account 1", 0)
	require.NoError(t, repo.AddAccount(ctx, account))

	err := repo.UpdateAccount(
		ctx, account.ID, func(a *domain.Account) (*domain.Account, error) {
			a.Name = "Renamed"
			return a, nil
		},
	)
	require.NoError(t, err)

	found, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", found.Name)

	err = repo.UpdateAccount(
		ctx, "unknown", func(a *domain.Account) (*domain.Account, error) {
			return a, nil
		},
	)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestDeleteAccount(t *testing.T) {
	repo := newTestRepoManager(t).AccountRepository()
	ctx := context.Background()

	account := newTestAccount(t, "Account 1", 0)
	require.NoError(t, repo.AddAccount(ctx, account))

	require.NoError(t, repo.DeleteAccount(ctx, account.ID))

	err := repo.DeleteAccount(ctx, account.ID)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}
