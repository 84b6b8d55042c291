package dbbadger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
)

var testMnemonic = strings.Split(
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon "+
		"abandon abandon about",
	" ",
)

func TestInitAndGetVault(t *testing.T) {
	repo := newTestRepoManager(t).VaultRepository()
	ctx := context.Background()

	vault, err := repo.GetVault(ctx)
	require.NoError(t, err)
	require.Nil(t, vault)

	newVault, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)
	require.NoError(t, repo.InitVault(ctx, newVault))

	err = repo.InitVault(ctx, newVault)
	require.EqualError(t, err, domain.ErrWalletAlreadyInitialized.Error())

	vault, err = repo.GetVault(ctx)
	require.NoError(t, err)
	require.True(t, vault.IsValidPin("1234"))

	mnemonic, err := vault.Mnemonic("1234")
	require.NoError(t, err)
	require.Equal(t, testMnemonic, mnemonic)
}

func TestUpdateVault(t *testing.T) {
	repo := newTestRepoManager(t).VaultRepository()
	ctx := context.Background()

	err := repo.UpdateVault(
		ctx, func(v *domain.Vault) (*domain.Vault, error) {
			return v, nil
		},
	)
	require.EqualError(t, err, domain.ErrWalletNotInitialized.Error())

	newVault, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)
	require.NoError(t, repo.InitVault(ctx, newVault))

	err = repo.UpdateVault(
		ctx, func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.ChangePin("1234", "5678"); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
	require.NoError(t, err)

	vault, err := repo.GetVault(ctx)
	require.NoError(t, err)
	require.False(t, vault.IsValidPin("1234"))
	require.True(t, vault.IsValidPin("5678"))
}

func TestResetVault(t *testing.T) {
	repo := newTestRepoManager(t).VaultRepository()
	ctx := context.Background()

	// resetting a missing vault is not an error
	require.NoError(t, repo.ResetVault(ctx))

	newVault, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)
	require.NoError(t, repo.InitVault(ctx, newVault))

	require.NoError(t, repo.ResetVault(ctx))

	vault, err := repo.GetVault(ctx)
	require.NoError(t, err)
	require.Nil(t, vault)
}
