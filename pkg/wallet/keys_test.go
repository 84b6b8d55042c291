package wallet_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

var testMnemonic = strings.Split(
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon "+
		"abandon abandon about",
	" ",
)

func TestDeriveAccount(t *testing.T) {
	t.Parallel()

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
	require.NoError(t, err)

	key, err := w.DeriveAccount(wallet.DeriveAccountOpts{
		DerivationPath: "m/44'/60'/0'/0/0",
	})
	require.NoError(t, err)
	// reference vector for the BIP39 test mnemonic
	require.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", key.Address)
	require.Equal(
		t,
		"0x1837c1be8e2995ec11cda2b066151be2cfb48adf9e47b151d46adab3a21cdf67",
		key.PrivateKeyHex(),
	)
	require.Equal(
		t, key.Address, crypto.PubkeyToAddress(key.PrivateKey.PublicKey).Hex(),
	)
}

func TestDeriveAccountIsDeterministic(t *testing.T) {
	t.Parallel()

	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: 256})
	require.NoError(t, err)

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	require.NoError(t, err)

	path0, _ := wallet.AccountDerivationPath(0)
	path1, _ := wallet.AccountDerivationPath(1)

	first, err := w.DeriveAccount(wallet.DeriveAccountOpts{
		DerivationPath: path0.String(),
	})
	require.NoError(t, err)

	again, err := w.DeriveAccount(wallet.DeriveAccountOpts{
		DerivationPath: path0.String(),
	})
	require.NoError(t, err)
	require.Equal(t, first.Address, again.Address)
	require.Equal(t, first.PrivateKeyHex(), again.PrivateKeyHex())

	sibling, err := w.DeriveAccount(wallet.DeriveAccountOpts{
		DerivationPath: path1.String(),
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Address, sibling.Address)
}

func TestFailingDeriveAccount(t *testing.T) {
	t.Parallel()

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"not enough elems", "m/44'/60'/0'"},
		{"account not hardened", "m/44'/60'/0/0/0"},
		{"malformed", "44'/60'/0'/0/0/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := w.DeriveAccount(wallet.DeriveAccountOpts{
				DerivationPath: tt.path,
			})
			require.Error(t, err)
			require.Nil(t, key)
		})
	}
}

func TestFromPrivateKey(t *testing.T) {
	t.Parallel()

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
	require.NoError(t, err)

	derived, err := w.DeriveAccount(wallet.DeriveAccountOpts{
		DerivationPath: "m/44'/60'/0'/0/0",
	})
	require.NoError(t, err)

	imported, err := wallet.FromPrivateKey(wallet.FromPrivateKeyOpts{
		PrivateKeyHex: derived.PrivateKeyHex(),
	})
	require.NoError(t, err)
	require.Equal(t, derived.Address, imported.Address)
}

func TestFailingFromPrivateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"missing prefix", strings.Repeat("ab", 32)},
		{"too short", "0x" + strings.Repeat("ab", 31)},
		{"too long", "0x" + strings.Repeat("ab", 33)},
		{"not hex", "0x" + strings.Repeat("zz", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := wallet.FromPrivateKey(wallet.FromPrivateKeyOpts{
				PrivateKeyHex: tt.key,
			})
			require.EqualError(t, err, wallet.ErrInvalidPrivateKey.Error())
			require.Nil(t, key)
		})
	}
}
