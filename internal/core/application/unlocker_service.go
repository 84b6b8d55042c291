package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/pkg/securestore"
)

const biometricPromptReason = "Unlock your wallet"

// UnlockerService is the authentication gate of the wallet. Every path to an
// unlocked session goes through here: PIN verification, biometric prompt,
// lock, PIN rotation and biometric enrollment.
type UnlockerService interface {
	// UnlockWithPin verifies the PIN, unlocks the secure store and publishes
	// the active account's signer. A wrong PIN yields ErrIncorrectPin with no
	// state change; a correct PIN over missing or inconsistent secrets yields
	// ErrCorruptedState and leaves the session locked.
	UnlockWithPin(ctx context.Context, pin string) (*Signer, error)
	// UnlockWithBiometrics shows the platform prompt and, on success, unlocks
	// with the enrolled credential. A dismissed prompt yields
	// ErrAuthCancelled with no side effects.
	UnlockWithBiometrics(ctx context.Context) (*Signer, error)
	// Lock drops the signer and relocks the secure store. Locking a locked
	// wallet is a no-op.
	Lock(ctx context.Context)
	// VerifyPin checks the given PIN against the stored hash without
	// unlocking anything.
	VerifyPin(ctx context.Context, pin string) error
	// ChangePin rotates the PIN: the vault record is re-encrypted under the
	// new PIN and the secure store password is changed accordingly. The
	// session's lock state is preserved.
	ChangePin(ctx context.Context, currentPin, newPin string) error
	// CanUseBiometrics returns whether biometric unlock can be offered right
	// now: hardware available, wallet initialized and the feature enabled.
	CanUseBiometrics(ctx context.Context) (bool, error)
	// SetBiometricsEnabled turns biometric unlock on or off. Enabling
	// requires the PIN and available biometric hardware; the credential is
	// enrolled behind the platform's biometric gate.
	SetBiometricsEnabled(ctx context.Context, pin string, enabled bool) error
}

type unlockerService struct {
	repoManager ports.RepoManager
	secureStore securestore.SecureStorage
	session     *Session
	biometric   ports.BiometricAuthenticator
	chainClient ports.ChainClient
}

// NewUnlockerService returns a new UnlockerService.
func NewUnlockerService(
	repoManager ports.RepoManager,
	secureStore securestore.SecureStorage,
	session *Session,
	biometric ports.BiometricAuthenticator,
	chainClient ports.ChainClient,
) UnlockerService {
	return &unlockerService{
		repoManager: repoManager,
		secureStore: secureStore,
		session:     session,
		biometric:   biometric,
		chainClient: chainClient,
	}
}

func (s *unlockerService) UnlockWithPin(
	ctx context.Context, pin string,
) (*Signer, error) {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return nil, err
	}
	if vault == nil {
		return nil, domain.ErrWalletNotInitialized
	}
	if !vault.IsValidPin(pin) {
		return nil, domain.ErrIncorrectPin
	}

	epoch := s.session.Epoch()

	password := []byte(pin)
	if err := s.secureStore.CreateUnlock(&password); err != nil {
		// the hash matched but the store rejects the same PIN, the two
		// records went out of sync
		if errors.Is(err, securestore.ErrInvalidPassword) {
			return nil, domain.ErrCorruptedState
		}
		return nil, err
	}

	active, err := s.repoManager.AccountRepository().GetActiveAccount(ctx)
	if err != nil {
		s.secureStore.Lock()
		return nil, err
	}
	if active == nil {
		s.secureStore.Lock()
		return nil, domain.ErrCorruptedState
	}

	signer, err := materializeSigner(ctx, active, s.secureStore, s.chainClient)
	if err != nil {
		s.secureStore.Lock()
		return nil, err
	}

	if err := s.session.SetSigner(signer, epoch); err != nil {
		s.secureStore.Lock()
		return nil, err
	}

	log.WithField("address", signer.Address()).Debug("wallet unlocked")
	return signer, nil
}

func (s *unlockerService) UnlockWithBiometrics(
	ctx context.Context,
) (*Signer, error) {
	canUse, err := s.CanUseBiometrics(ctx)
	if err != nil {
		return nil, err
	}
	if !canUse {
		return nil, domain.ErrBiometricsUnavailable
	}

	credential, err := s.biometric.Authenticate(ctx, biometricPromptReason)
	if err != nil {
		return nil, err
	}

	return s.UnlockWithPin(ctx, string(credential))
}

func (s *unlockerService) Lock(ctx context.Context) {
	s.session.Clear()
	s.secureStore.Lock()
	log.Debug("wallet locked")
}

func (s *unlockerService) VerifyPin(ctx context.Context, pin string) error {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return err
	}
	if vault == nil {
		return domain.ErrWalletNotInitialized
	}
	if !vault.IsValidPin(pin) {
		return domain.ErrIncorrectPin
	}
	return nil
}

func (s *unlockerService) ChangePin(
	ctx context.Context, currentPin, newPin string,
) error {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return err
	}
	if vault == nil {
		return domain.ErrWalletNotInitialized
	}

	// validates both PINs and re-encrypts the mnemonic
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx, func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.ChangePin(currentPin, newPin); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		return err
	}

	wasLocked := s.secureStore.IsLocked()
	if wasLocked {
		password := []byte(currentPin)
		if err := s.secureStore.CreateUnlock(&password); err != nil {
			s.rollbackPin(ctx, currentPin, newPin)
			return err
		}
	}
	if err := s.secureStore.ChangePassword(
		[]byte(currentPin), []byte(newPin),
	); err != nil {
		if wasLocked {
			s.secureStore.Lock()
		}
		s.rollbackPin(ctx, currentPin, newPin)
		return err
	}
	if wasLocked {
		s.secureStore.Lock()
	}

	if vault.BiometricsEnabled {
		if err := s.biometric.Enroll([]byte(newPin)); err != nil {
			// drop the feature rather than leave a stale credential enrolled
			log.WithError(err).Warn(
				"change pin: failed to re-enroll biometric credential, " +
					"disabling biometric unlock",
			)
			if err := s.setBiometricsFlag(ctx, false); err != nil {
				return err
			}
			s.biometric.Remove()
		}
	}

	log.Info("pin changed")
	return nil
}

func (s *unlockerService) CanUseBiometrics(ctx context.Context) (bool, error) {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return false, err
	}
	if vault == nil || !vault.BiometricsEnabled {
		return false, nil
	}
	return s.biometric.Available(), nil
}

func (s *unlockerService) SetBiometricsEnabled(
	ctx context.Context, pin string, enabled bool,
) error {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return err
	}
	if vault == nil {
		return domain.ErrWalletNotInitialized
	}
	if !vault.IsValidPin(pin) {
		return domain.ErrIncorrectPin
	}

	if enabled {
		if !s.biometric.Available() {
			return domain.ErrBiometricsUnavailable
		}
		if err := s.biometric.Enroll([]byte(pin)); err != nil {
			return err
		}
	} else {
		if err := s.biometric.Remove(); err != nil {
			return err
		}
	}

	if err := s.setBiometricsFlag(ctx, enabled); err != nil {
		if enabled {
			s.biometric.Remove()
		}
		return err
	}

	log.WithField("enabled", enabled).Info("biometric unlock updated")
	return nil
}

func (s *unlockerService) setBiometricsFlag(
	ctx context.Context, enabled bool,
) error {
	return s.repoManager.VaultRepository().UpdateVault(
		ctx, func(v *domain.Vault) (*domain.Vault, error) {
			v.BiometricsEnabled = enabled
			return v, nil
		},
	)
}

func (s *unlockerService) rollbackPin(
	ctx context.Context, currentPin, newPin string,
) {
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx, func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.ChangePin(newPin, currentPin); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		log.WithError(err).Error(
			"change pin: failed to roll back vault record, wallet may need " +
				"to be restored from its mnemonic",
		)
	}
}
