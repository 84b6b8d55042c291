package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

func TestParseDerivationPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strPath string
		want    string
	}{
		{"m/44'/60'/0'/0/0", "m/44'/60'/0'/0/0"},
		{"44'/60'/0'/0/5", "m/44'/60'/0'/0/5"},
		{"m/44'/60'/0'/0", "m/44'/60'/0'/0"},
	}

	for _, tt := range tests {
		path, err := wallet.ParseDerivationPath(tt.strPath)
		require.NoError(t, err)
		require.Equal(t, tt.want, path.String())
	}
}

func TestFailingParseDerivationPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		strPath string
	}{
		{"empty", ""},
		{"only root", "m"},
		{"trailing slash", "m/44'/60'/"},
		{"leading slash", "/44'/60'/0'/0/0"},
		{"out of range", "m/4294967296/60'/0'/0/0"},
		{"not a number", "m/44'/sixty'/0'/0/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := wallet.ParseDerivationPath(tt.strPath)
			require.Error(t, err)
			require.Nil(t, path)
		})
	}
}

func TestAccountDerivationPath(t *testing.T) {
	t.Parallel()

	path, err := wallet.AccountDerivationPath(0)
	require.NoError(t, err)
	require.Equal(t, "m/44'/60'/0'/0/0", path.String())

	path, err = wallet.AccountDerivationPath(42)
	require.NoError(t, err)
	require.Equal(t, "m/44'/60'/0'/0/42", path.String())

	path, err = wallet.AccountDerivationPath(-1)
	require.EqualError(t, err, wallet.ErrOutOfRangeDerivationPathIndex.Error())
	require.Nil(t, path)
}
