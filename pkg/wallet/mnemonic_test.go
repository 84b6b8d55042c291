package wallet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

func TestNewMnemonic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entropySize int
		wordCount   int
	}{
		{0, 12},
		{128, 12},
		{160, 15},
		{192, 18},
		{224, 21},
		{256, 24},
	}

	for _, tt := range tests {
		mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
			EntropySize: tt.entropySize,
		})
		require.NoError(t, err)
		require.Len(t, mnemonic, tt.wordCount)
		require.True(t, wallet.IsMnemonicValid(mnemonic))
	}
}

func TestFailingNewMnemonic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entropySize   int
		expectedError error
	}{
		{-1, wallet.ErrInvalidEntropySize},
		{100, wallet.ErrInvalidEntropySize},
		{130, wallet.ErrInvalidEntropySize},
		{288, wallet.ErrInvalidEntropySize},
	}

	for _, tt := range tests {
		mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
			EntropySize: tt.entropySize,
		})
		require.Nil(t, mnemonic)
		require.EqualError(t, err, tt.expectedError.Error())
	}
}

func TestIsMnemonicValid(t *testing.T) {
	t.Parallel()

	for _, size := range []int{128, 160, 192, 224, 256} {
		mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
			EntropySize: size,
		})
		require.NoError(t, err)
		require.True(t, wallet.IsMnemonicValid(mnemonic))

		// breaking the final word breaks the checksum
		broken := make([]string, len(mnemonic))
		copy(broken, mnemonic)
		broken[len(broken)-1] = "abandon"
		if mnemonic[len(mnemonic)-1] == "abandon" {
			broken[len(broken)-1] = "zoo"
		}
		require.False(t, wallet.IsMnemonicValid(broken))
	}
}

func TestIsMnemonicValidRejectsBadWordCount(t *testing.T) {
	t.Parallel()

	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	require.NoError(t, err)

	tests := [][]string{
		nil,
		mnemonic[:9],
		mnemonic[:11],
		append(append([]string{}, mnemonic...), "abandon"),
	}

	for _, tt := range tests {
		require.False(t, wallet.IsMnemonicValid(tt))
	}
}

func TestSanitizeMnemonic(t *testing.T) {
	t.Parallel()

	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	require.NoError(t, err)

	phrase := "  " + strings.Join(mnemonic, "   ") + "\t\n"
	require.Equal(t, mnemonic, wallet.SanitizeMnemonic(phrase))
}
