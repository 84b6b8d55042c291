package application

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

var (
	// ErrSessionExpired is returned when publishing a signer prepared against
	// an epoch that has been invalidated by a concurrent lock, reset or
	// account switch. The prepared signer is discarded.
	ErrSessionExpired = errors.New("session expired while unlocking")
	// ErrInvalidDigest ...
	ErrInvalidDigest = errors.New("digest to sign must be exactly 32 bytes")
)

// Signer is the in-memory signing capability for one account. It exists only
// while the session is unlocked and holds the only plaintext copy of the
// private key outside the secure store.
type Signer struct {
	accountID  string
	address    string
	privateKey *ecdsa.PrivateKey
	chain      ports.ChainClient
}

// NewSigner returns a Signer for the given account key.
func NewSigner(
	accountID string, key *wallet.AccountKey, chain ports.ChainClient,
) *Signer {
	return &Signer{
		accountID:  accountID,
		address:    key.Address,
		privateKey: key.PrivateKey,
		chain:      chain,
	}
}

// AccountID returns the id of the account the signer is bound to
func (s *Signer) AccountID() string {
	return s.accountID
}

// Address returns the 0x checksummed address the signer controls
func (s *Signer) Address() string {
	return s.address
}

// Balance returns the signer's balance in wei.
func (s *Signer) Balance(ctx context.Context) (*big.Int, error) {
	return s.chain.BalanceOf(ctx, s.address)
}

// SignHash signs the given 32 byte digest with the account's key and returns
// the 65 byte [R || S || V] signature.
func (s *Signer) SignHash(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, ErrInvalidDigest
	}
	return crypto.Sign(digest, s.privateKey)
}

// SignMessage signs the given message prefixed as per EIP-191 ("personal
// sign") and returns the 65 byte signature.
func (s *Signer) SignMessage(message []byte) ([]byte, error) {
	return s.SignHash(accounts.TextHash(message))
}

// Session is the process-wide holder of the unlocked signer. At most one
// signer is published at a time. Every mutation bumps an epoch counter so
// that a signer prepared before a lock, reset or switch can never be
// published after it: preparing is done outside the lock, publishing is
// rejected if the epoch moved in between.
type Session struct {
	mtx    sync.RWMutex
	signer *Signer
	epoch  uint64
}

// NewSession returns an empty, locked Session.
func NewSession() *Session {
	return &Session{}
}

// Epoch returns the current session epoch. Capture it before preparing a
// signer and hand it back to SetSigner.
func (s *Session) Epoch() uint64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.epoch
}

// SetSigner publishes the signer prepared against the given epoch. If the
// session moved on in the meantime the signer is rejected with
// ErrSessionExpired and the previous state is untouched.
func (s *Session) SetSigner(signer *Signer, epoch uint64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.epoch != epoch {
		return ErrSessionExpired
	}
	s.signer = signer
	s.epoch++
	return nil
}

// Clear drops the signer and invalidates any publish in flight.
func (s *Session) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.signer = nil
	s.epoch++
}

// IsUnlocked returns whether a signer is currently published.
func (s *Session) IsUnlocked() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.signer != nil
}

// Signer returns the published signer, or ErrNotUnlocked.
func (s *Session) Signer() (*Signer, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.signer == nil {
		return nil, domain.ErrNotUnlocked
	}
	return s.signer, nil
}

// Balance fetches the published signer's balance. The RPC round trip runs
// outside the lock; if the session was cleared or replaced while it was in
// flight the stale result is discarded and ErrNotUnlocked returned.
func (s *Session) Balance(ctx context.Context) (*big.Int, error) {
	s.mtx.RLock()
	signer, epoch := s.signer, s.epoch
	s.mtx.RUnlock()

	if signer == nil {
		return nil, domain.ErrNotUnlocked
	}

	balance, err := signer.Balance(ctx)
	if err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.epoch != epoch {
		return nil, domain.ErrNotUnlocked
	}
	return balance, nil
}
