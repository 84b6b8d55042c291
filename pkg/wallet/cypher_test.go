package wallet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	plaintext := strings.Join(testMnemonic, " ")

	cypherText, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  plaintext,
		Passphrase: "1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, cypherText)

	decrypted, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: cypherText,
		Passphrase: "1234",
	})
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}

func TestFailingDecrypt(t *testing.T) {
	t.Parallel()

	cypherText, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  "super secret",
		Passphrase: "1234",
	})
	require.NoError(t, err)

	decrypted, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: cypherText,
		Passphrase: "4321",
	})
	require.Error(t, err)
	require.Empty(t, decrypted)
}

func TestFailingEncryptDecryptValidation(t *testing.T) {
	t.Parallel()

	_, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText: "missing passphrase",
	})
	require.EqualError(t, err, wallet.ErrNullPassphrase.Error())

	_, err = wallet.Encrypt(wallet.EncryptOpts{
		Passphrase: "1234",
	})
	require.EqualError(t, err, wallet.ErrNullPlainText.Error())

	_, err = wallet.Decrypt(wallet.DecryptOpts{
		CypherText: "not base64!",
		Passphrase: "1234",
	})
	require.EqualError(t, err, wallet.ErrInvalidCypherText.Error())

	_, err = wallet.Decrypt(wallet.DecryptOpts{
		CypherText: "dG9vc2hvcnQ=",
		Passphrase: "1234",
	})
	require.EqualError(t, err, wallet.ErrInvalidCypherText.Error())
}
