package application

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/pkg/securestore"
	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

// WalletStatus is the synthetic view of the wallet state surfaced to callers
type WalletStatus struct {
	Initialized       bool
	Unlocked          bool
	BiometricsEnabled bool
}

// WalletService is the lifecycle interface of the wallet: seed generation,
// creation/restore, status and factory reset.
type WalletService interface {
	// GenSeed returns a brand new 12 word mnemonic. Nothing is persisted, the
	// phrase only becomes a wallet once handed to InitWallet.
	GenSeed(ctx context.Context) ([]string, error)
	// InitWallet creates the wallet from the given mnemonic, protected by the
	// given PIN, with one derived account at index 0 named as provided. On
	// success the wallet is left unlocked with the new account's signer
	// published. Importing an existing phrase and creating a fresh one go
	// through the same path.
	InitWallet(
		ctx context.Context, mnemonic []string, pin, accountName string,
	) (*domain.Account, error)
	// Status reports whether the wallet is initialized, unlocked and has
	// biometric unlock enabled.
	Status(ctx context.Context) (*WalletStatus, error)
	// Reset erases the vault, the account registry and every secret, and
	// invalidates the session. Resetting an uninitialized wallet is a no-op.
	Reset(ctx context.Context) error
}

type walletService struct {
	repoManager ports.RepoManager
	secureStore securestore.SecureStorage
	session     *Session
	chainClient ports.ChainClient
}

// NewWalletService returns a new WalletService.
func NewWalletService(
	repoManager ports.RepoManager,
	secureStore securestore.SecureStorage,
	session *Session,
	chainClient ports.ChainClient,
) WalletService {
	return &walletService{
		repoManager: repoManager,
		secureStore: secureStore,
		session:     session,
		chainClient: chainClient,
	}
}

func (s *walletService) GenSeed(ctx context.Context) ([]string, error) {
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	if err != nil {
		log.WithError(err).Error("gen seed: failed to generate mnemonic")
		return nil, err
	}
	return mnemonic, nil
}

func (s *walletService) InitWallet(
	ctx context.Context, mnemonic []string, pin, accountName string,
) (*domain.Account, error) {
	storedVault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return nil, err
	}
	if storedVault != nil {
		return nil, domain.ErrWalletAlreadyInitialized
	}

	if len(accountName) <= 0 {
		return nil, domain.ErrNullAccountName
	}

	// validates both the PIN and the mnemonic
	vault, err := domain.NewVault(mnemonic, pin)
	if err != nil {
		return nil, err
	}

	epoch := s.session.Epoch()

	// an earlier interrupted init may have left residue behind, the vault
	// record is written last so its absence means we can start over
	if err := s.secureStore.Wipe(); err != nil {
		return nil, err
	}
	if err := s.dropAllAccounts(ctx); err != nil {
		return nil, err
	}

	password := []byte(pin)
	if err := s.secureStore.CreateUnlock(&password); err != nil {
		return nil, err
	}
	if err := s.secureStore.CreateBucket(accountsBucketKey); err != nil {
		return nil, err
	}
	if err := s.secureStore.AddToBucket(
		nil, mnemonicKey, []byte(strings.Join(mnemonic, " ")),
	); err != nil {
		return nil, err
	}

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, err
	}
	path, err := wallet.AccountDerivationPath(0)
	if err != nil {
		return nil, err
	}
	key, err := w.DeriveAccount(wallet.DeriveAccountOpts{
		DerivationPath: path.String(),
	})
	if err != nil {
		return nil, err
	}

	account, err := domain.NewDerivedAccount(
		accountName, key.Address, path.String(), 0,
	)
	if err != nil {
		return nil, err
	}
	account.Active = true

	if err := s.repoManager.AccountRepository().AddAccount(ctx, account); err != nil {
		return nil, err
	}
	// commit point, from here on the wallet reports as initialized
	if err := s.repoManager.VaultRepository().InitVault(ctx, vault); err != nil {
		return nil, err
	}

	signer := NewSigner(account.ID, key, s.chainClient)
	if err := s.session.SetSigner(signer, epoch); err != nil {
		s.secureStore.Lock()
		return nil, err
	}

	log.WithFields(log.Fields{
		"address": account.Address,
		"account": account.Name,
	}).Info("wallet initialized")

	return account, nil
}

func (s *walletService) Status(ctx context.Context) (*WalletStatus, error) {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx)
	if err != nil {
		return nil, err
	}

	status := &WalletStatus{
		Initialized: vault != nil,
		Unlocked:    s.session.IsUnlocked(),
	}
	if vault != nil {
		status.BiometricsEnabled = vault.BiometricsEnabled
	}
	return status, nil
}

func (s *walletService) Reset(ctx context.Context) error {
	// invalidate the session first so an unlock racing with the reset can
	// never publish a signer rebuilt from the erased secrets
	s.session.Clear()
	s.secureStore.Lock()

	if err := s.secureStore.Wipe(); err != nil {
		return err
	}
	if err := s.dropAllAccounts(ctx); err != nil {
		return err
	}
	if err := s.repoManager.VaultRepository().ResetVault(ctx); err != nil {
		return err
	}

	log.Info("wallet reset")
	return nil
}

func (s *walletService) dropAllAccounts(ctx context.Context) error {
	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if err := s.repoManager.AccountRepository().DeleteAccount(
			ctx, account.ID,
		); err != nil {
			return err
		}
	}
	return nil
}
