package domain

import "errors"

var (
	// ErrWalletNotInitialized is returned when operating on a wallet that has
	// not been created or imported yet.
	ErrWalletNotInitialized = errors.New("wallet is not initialized")
	// ErrWalletAlreadyInitialized is returned when trying to create or import
	// a wallet over an existing one.
	ErrWalletAlreadyInitialized = errors.New("wallet is already initialized")
	// ErrNotUnlocked is returned when an operation requires an unlocked
	// session and none is held.
	ErrNotUnlocked = errors.New("wallet must be unlocked to perform this operation")

	// ErrInvalidMnemonic is returned for phrases failing wordlist or checksum
	// validation. The caller must correct the input, no state has changed.
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidPin is returned when the PIN is not exactly 4 digits.
	ErrInvalidPin = errors.New("pin must be exactly 4 numeric digits")
	// ErrIncorrectPin is returned when the candidate PIN does not match the
	// stored hash. Retryable, the entered buffer must be cleared.
	ErrIncorrectPin = errors.New("pin is not correct")
	// ErrAuthCancelled is returned when the biometric prompt is dismissed or
	// fails. The gate returns to Locked with no side effects.
	ErrAuthCancelled = errors.New("authentication cancelled")
	// ErrBiometricsUnavailable is returned when biometric unlock is requested
	// but hardware, enrollment or an existing PIN is missing.
	ErrBiometricsUnavailable = errors.New("biometric authentication is not available")
	// ErrCorruptedState is returned when secrets are missing or inconsistent
	// after a successful authentication. Distinct from ErrIncorrectPin on
	// purpose: it directs the user towards a wallet reset/import, not a PIN
	// retry loop.
	ErrCorruptedState = errors.New("wallet state is corrupted")

	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("an account with the same address already exists")
	// ErrLastAccount is returned when deleting the only account left.
	ErrLastAccount = errors.New("cannot delete the last account")
	// ErrNullAccountName ...
	ErrNullAccountName = errors.New("account name must not be null")
	// ErrInvalidAccountIndex ...
	ErrInvalidAccountIndex = errors.New("derivation index must be a non-negative integer")
)
