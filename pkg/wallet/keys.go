package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/ethereum/go-ethereum/crypto"
)

var privKeyRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// AccountKey binds an Ethereum address to the private key it is derived
// from. It lives in memory only and is never serialized as a whole.
type AccountKey struct {
	Address    string
	PrivateKey *ecdsa.PrivateKey
}

// PrivateKeyHex returns the 0x-prefixed hex encoding of the private key
func (k AccountKey) PrivateKeyHex() string {
	return "0x" + hex.EncodeToString(crypto.FromECDSA(k.PrivateKey))
}

// DeriveAccountOpts is the struct given to the DeriveAccount method
type DeriveAccountOpts struct {
	DerivationPath string
}

func (o DeriveAccountOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}

	return checkDerivationPath(derivationPath)
}

// DeriveAccount derives the key pair at the provided derivation path and
// returns it along with the Ethereum address it controls. The derivation is
// deterministic, same wallet and path always yield the same pair.
func (w *Wallet) DeriveAccount(opts DeriveAccountOpts) (*AccountKey, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	hdNode, err := hdkeychain.NewKeyFromString(
		base58.Encode(w.masterKey),
	)
	if err != nil {
		return nil, err
	}

	derivationPath, _ := ParseDerivationPath(opts.DerivationPath)
	for _, step := range derivationPath {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, err
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, err
	}
	key, err := crypto.ToECDSA(privateKey.Serialize())
	if err != nil {
		return nil, err
	}

	return &AccountKey{
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: key,
	}, nil
}

// FromPrivateKeyOpts is the struct given to the FromPrivateKey method
type FromPrivateKeyOpts struct {
	PrivateKeyHex string
}

func (o FromPrivateKeyOpts) validate() error {
	if !privKeyRegexp.MatchString(o.PrivateKeyHex) {
		return ErrInvalidPrivateKey
	}
	return nil
}

// FromPrivateKey validates the 0x-prefixed 32 byte hex key and returns it
// along with the address it controls
func FromPrivateKey(opts FromPrivateKeyOpts) (*AccountKey, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(opts.PrivateKeyHex, "0x"))
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}

	return &AccountKey{
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: key,
	}, nil
}
