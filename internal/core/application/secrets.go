package application

import (
	"context"
	"strings"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/pkg/securestore"
	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

// Layout of the secure store:
//
//	root bucket
//	├── "mnemonic"            the wallet's plaintext mnemonic phrase
//	└── "accounts"  (bucket)
//	    └── <account id>      0x hex private key of each imported account
var (
	mnemonicKey       = []byte("mnemonic")
	accountsBucketKey = []byte("accounts")
)

// storedMnemonic returns the wallet's mnemonic from the secure store. The
// store must be unlocked; a missing entry on an initialized wallet means the
// store and the vault went out of sync.
func storedMnemonic(store securestore.SecureStorage) ([]string, error) {
	phrase, err := store.GetFromBucket(nil, mnemonicKey)
	if err != nil {
		return nil, err
	}
	if len(phrase) <= 0 {
		return nil, domain.ErrCorruptedState
	}
	return strings.Split(string(phrase), " "), nil
}

// materializeSigner rebuilds the signing key of the given account from the
// secrets in the (unlocked) secure store and verifies that it still controls
// the registered address.
func materializeSigner(
	_ context.Context, account *domain.Account,
	store securestore.SecureStorage, chain ports.ChainClient,
) (*Signer, error) {
	var key *wallet.AccountKey

	if account.IsDerived() {
		mnemonic, err := storedMnemonic(store)
		if err != nil {
			return nil, err
		}
		w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
			Mnemonic: mnemonic,
		})
		if err != nil {
			return nil, domain.ErrCorruptedState
		}
		key, err = w.DeriveAccount(wallet.DeriveAccountOpts{
			DerivationPath: account.DerivationPath,
		})
		if err != nil {
			return nil, domain.ErrCorruptedState
		}
	} else {
		privateKeyHex, err := store.GetFromBucket(accountsBucketKey, []byte(account.ID))
		if err != nil {
			return nil, err
		}
		if len(privateKeyHex) <= 0 {
			return nil, domain.ErrCorruptedState
		}
		key, err = wallet.FromPrivateKey(wallet.FromPrivateKeyOpts{
			PrivateKeyHex: string(privateKeyHex),
		})
		if err != nil {
			return nil, domain.ErrCorruptedState
		}
	}

	// the address is re-derived and checked on every unlock, a mismatch means
	// the registry was tampered with
	if key.Address != account.Address {
		return nil, domain.ErrCorruptedState
	}

	return NewSigner(account.ID, key, chain), nil
}
