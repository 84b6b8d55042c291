package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportedAccountIndex is the sentinel derivation index of accounts imported
// from a raw private key instead of being derived from the wallet's mnemonic.
const ImportedAccountIndex = -1

// Account defines the entity data structure for an account of the HD wallet.
// The address is derivable at any time from either (mnemonic, DerivationPath)
// or the private key stored in the secure store under the account id; it is
// kept here only as a display value and re-verified on unlock.
type Account struct {
	ID              string `badgerhold:"key"`
	Name            string
	Address         string
	DerivationIndex int
	DerivationPath  string
	Active          bool
	CreatedAt       time.Time
}

// NewDerivedAccount returns an Account at the given mnemonic derivation index
func NewDerivedAccount(
	name, address, derivationPath string, derivationIndex int,
) (*Account, error) {
	if len(name) <= 0 {
		return nil, ErrNullAccountName
	}
	if derivationIndex < 0 {
		return nil, ErrInvalidAccountIndex
	}

	return &Account{
		ID:              uuid.New().String(),
		Name:            name,
		Address:         address,
		DerivationIndex: derivationIndex,
		DerivationPath:  derivationPath,
		CreatedAt:       time.Now(),
	}, nil
}

// NewImportedAccount returns an Account backed by a raw private key. Such
// accounts carry the sentinel index and an empty derivation path.
func NewImportedAccount(name, address string) (*Account, error) {
	if len(name) <= 0 {
		return nil, ErrNullAccountName
	}

	return &Account{
		ID:              uuid.New().String(),
		Name:            name,
		Address:         address,
		DerivationIndex: ImportedAccountIndex,
		DerivationPath:  "",
		CreatedAt:       time.Now(),
	}, nil
}

// IsDerived returns whether the account is derived from the wallet mnemonic
func (a *Account) IsDerived() bool {
	return a.DerivationIndex >= 0
}

// NextDerivationIndex returns the derivation index for the next account to be
// derived from the mnemonic: 0 for an empty list, 1 + the highest index in
// use otherwise. Gaps left by deleted accounts are never reused so that a new
// account can not collide with the address of a previously deleted one.
func NextDerivationIndex(accounts []Account) int {
	next := 0
	for _, account := range accounts {
		if account.IsDerived() && account.DerivationIndex >= next {
			next = account.DerivationIndex + 1
		}
	}
	return next
}
