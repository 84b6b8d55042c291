package application_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etherkeep/etherkeep-daemon/internal/core/application"
	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

func newTestSigner(t *testing.T, chain *mockChainClient) *application.Signer {
	t.Helper()

	key, err := wallet.FromPrivateKey(wallet.FromPrivateKeyOpts{
		PrivateKeyHex: firstAccountPrivateKey,
	})
	require.NoError(t, err)

	return application.NewSigner("test-account", key, chain)
}

func TestSessionPublishAndClear(t *testing.T) {
	t.Parallel()

	session := application.NewSession()
	require.False(t, session.IsUnlocked())

	_, err := session.Signer()
	require.EqualError(t, err, domain.ErrNotUnlocked.Error())

	signer := newTestSigner(t, newMockChainClient())
	require.NoError(t, session.SetSigner(signer, session.Epoch()))
	require.True(t, session.IsUnlocked())

	published, err := session.Signer()
	require.NoError(t, err)
	require.Equal(t, firstAccountAddress, published.Address())

	session.Clear()
	require.False(t, session.IsUnlocked())
}

func TestSessionRejectsStaleEpoch(t *testing.T) {
	t.Parallel()

	session := application.NewSession()
	signer := newTestSigner(t, newMockChainClient())

	// an unlock completing after a concurrent reset must never publish
	epoch := session.Epoch()
	session.Clear()

	err := session.SetSigner(signer, epoch)
	require.EqualError(t, err, application.ErrSessionExpired.Error())
	require.False(t, session.IsUnlocked())
}

func TestSessionBalance(t *testing.T) {
	t.Parallel()

	chain := newMockChainClient()
	chain.balances[firstAccountAddress] = big.NewInt(1000000000000000000)

	session := application.NewSession()
	require.NoError(t, session.SetSigner(newTestSigner(t, chain), session.Epoch()))

	balance, err := session.Balance(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", balance.String())
}

func TestSessionBalanceDiscardsStaleResult(t *testing.T) {
	t.Parallel()

	chain := newMockChainClient()
	chain.balances[firstAccountAddress] = big.NewInt(21)
	chain.block = make(chan struct{})

	session := application.NewSession()
	require.NoError(t, session.SetSigner(newTestSigner(t, chain), session.Epoch()))

	var wg sync.WaitGroup
	wg.Add(1)
	var balance *big.Int
	var err error
	go func() {
		defer wg.Done()
		balance, err = session.Balance(context.Background())
	}()

	// lock the session while the fetch is in flight
	<-chain.requested
	session.Clear()
	close(chain.block)
	wg.Wait()

	require.Nil(t, balance)
	require.EqualError(t, err, domain.ErrNotUnlocked.Error())
}

func TestSignerSignatures(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, newMockChainClient())

	_, err := signer.SignHash([]byte("too short"))
	require.EqualError(t, err, application.ErrInvalidDigest.Error())

	digest := make([]byte, 32)
	sig, err := signer.SignHash(digest)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	sig, err = signer.SignMessage([]byte("hello ethereum"))
	require.NoError(t, err)
	require.Len(t, sig, 65)
}
