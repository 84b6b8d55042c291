package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"regexp"
	"strings"
	"time"

	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

// VaultVersion is the schema version of the persisted vault record. Bump it
// whenever the layout below changes and handle the migration explicitly.
const VaultVersion = 1

var pinRegexp = regexp.MustCompile(`^[0-9]{4}$`)

// Vault is the typed record holding the wallet's authentication material.
// The mnemonic appears here only as an AES-GCM ciphertext under a key
// stretched from the PIN; the plaintext lives exclusively in the secure
// store, which is itself unlocked by the PIN.
type Vault struct {
	Version           int
	EncryptedMnemonic string
	PinHash           []byte
	PinSalt           []byte
	BiometricsEnabled bool
	CreatedAt         time.Time
}

// NewVault encrypts the provided mnemonic with the PIN and returns a new
// Vault initialized with the ciphertext and the salted hash of the PIN.
// The salt is random per install, identical PINs on two devices never hash
// to the same value.
func NewVault(mnemonic []string, pin string) (*Vault, error) {
	if err := ValidatePin(pin); err != nil {
		return nil, err
	}
	if !wallet.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	encryptedMnemonic, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  strings.Join(mnemonic, " "),
		Passphrase: pin,
	})
	if err != nil {
		return nil, err
	}

	salt, err := newPinSalt()
	if err != nil {
		return nil, err
	}

	return &Vault{
		Version:           VaultVersion,
		EncryptedMnemonic: encryptedMnemonic,
		PinHash:           hashPin(pin, salt),
		PinSalt:           salt,
		CreatedAt:         time.Now(),
	}, nil
}

// ValidatePin returns ErrInvalidPin unless the PIN is exactly 4 digits.
// "0012" and "12" are distinct PINs, the value is never treated as a number.
func ValidatePin(pin string) error {
	if !pinRegexp.MatchString(pin) {
		return ErrInvalidPin
	}
	return nil
}

// IsValidPin compares the candidate against the stored hash in constant time
func (v *Vault) IsValidPin(pin string) bool {
	if ValidatePin(pin) != nil {
		return false
	}
	candidate := hashPin(pin, v.PinSalt)
	return subtle.ConstantTimeCompare(v.PinHash, candidate) == 1
}

// Mnemonic decrypts the vault's mnemonic with the provided PIN. A PIN that
// does not match the stored hash yields ErrIncorrectPin; a matching PIN with
// an undecryptable ciphertext means the record was tampered with and yields
// ErrCorruptedState.
func (v *Vault) Mnemonic(pin string) ([]string, error) {
	if !v.IsValidPin(pin) {
		return nil, ErrIncorrectPin
	}

	plaintext, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: v.EncryptedMnemonic,
		Passphrase: pin,
	})
	if err != nil {
		return nil, ErrCorruptedState
	}

	return strings.Split(plaintext, " "), nil
}

// ChangePin re-encrypts the mnemonic under the new PIN and replaces both the
// salt and the hash. The vault is modified only if every step succeeds.
func (v *Vault) ChangePin(currentPin, newPin string) error {
	if err := ValidatePin(newPin); err != nil {
		return err
	}

	mnemonic, err := v.Mnemonic(currentPin)
	if err != nil {
		return err
	}

	encryptedMnemonic, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  strings.Join(mnemonic, " "),
		Passphrase: newPin,
	})
	if err != nil {
		return err
	}

	salt, err := newPinSalt()
	if err != nil {
		return err
	}

	v.EncryptedMnemonic = encryptedMnemonic
	v.PinSalt = salt
	v.PinHash = hashPin(newPin, salt)
	return nil
}

func newPinSalt() ([]byte, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func hashPin(pin string, salt []byte) []byte {
	digest := sha256.Sum256(append([]byte(pin), salt...))
	return digest[:]
}
