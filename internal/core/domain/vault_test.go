package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

var testMnemonic = strings.Split(
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon "+
		"abandon abandon about",
	" ",
)

func TestNewVault(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)
	require.Equal(t, domain.VaultVersion, vault.Version)
	require.NotEmpty(t, vault.EncryptedMnemonic)
	require.Len(t, vault.PinSalt, 32)
	require.False(t, vault.BiometricsEnabled)

	mnemonic, err := vault.Mnemonic("1234")
	require.NoError(t, err)
	require.Equal(t, testMnemonic, mnemonic)
}

func TestFailingNewVault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		mnemonic      []string
		pin           string
		expectedError error
	}{
		{"bad pin length", testMnemonic, "123", domain.ErrInvalidPin},
		{"pin not numeric", testMnemonic, "12ab", domain.ErrInvalidPin},
		{"empty pin", testMnemonic, "", domain.ErrInvalidPin},
		{"null mnemonic", nil, "1234", domain.ErrInvalidMnemonic},
		{"bad checksum", append(testMnemonic[:11:11], "zoo"), "1234", domain.ErrInvalidMnemonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault, err := domain.NewVault(tt.mnemonic, tt.pin)
			require.Nil(t, vault)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestVaultPinSaltIsPerInstall(t *testing.T) {
	t.Parallel()

	first, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)
	second, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)

	require.NotEqual(t, first.PinSalt, second.PinSalt)
	require.NotEqual(t, first.PinHash, second.PinHash)
}

func TestIsValidPin(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewVault(testMnemonic, "0012")
	require.NoError(t, err)

	require.True(t, vault.IsValidPin("0012"))
	require.False(t, vault.IsValidPin("12"))
	require.False(t, vault.IsValidPin("0021"))
	require.False(t, vault.IsValidPin(""))
}

func TestFailingMnemonic(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)

	mnemonic, err := vault.Mnemonic("4321")
	require.Nil(t, mnemonic)
	require.EqualError(t, err, domain.ErrIncorrectPin.Error())

	// matching hash with a tampered ciphertext is corruption, not a PIN issue
	tampered, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  "not the mnemonic",
		Passphrase: "9999",
	})
	require.NoError(t, err)
	vault.EncryptedMnemonic = tampered

	mnemonic, err = vault.Mnemonic("1234")
	require.Nil(t, mnemonic)
	require.EqualError(t, err, domain.ErrCorruptedState.Error())
}

func TestChangePin(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewVault(testMnemonic, "1234")
	require.NoError(t, err)
	oldSalt := append([]byte{}, vault.PinSalt...)

	err = vault.ChangePin("4321", "5678")
	require.EqualError(t, err, domain.ErrIncorrectPin.Error())
	require.True(t, vault.IsValidPin("1234"))

	require.NoError(t, vault.ChangePin("1234", "5678"))
	require.False(t, vault.IsValidPin("1234"))
	require.True(t, vault.IsValidPin("5678"))
	require.NotEqual(t, oldSalt, vault.PinSalt)

	mnemonic, err := vault.Mnemonic("5678")
	require.NoError(t, err)
	require.Equal(t, testMnemonic, mnemonic)
}
