package application

import (
	"context"
	"math/big"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/pkg/securestore"
	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

// AccountService manages the account registry: listing, derivation of new
// accounts, raw key import, renaming, deletion and active account selection.
// Registry mutations are serialized internally, so concurrent account
// creations can not race on the next derivation index.
type AccountService interface {
	// ListAccounts returns every account ordered by creation time.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// GetActiveAccount returns the active account, or nil on an empty registry.
	GetActiveAccount(ctx context.Context) (*domain.Account, error)
	// CreateAccount derives a new account from the wallet mnemonic at the
	// lowest never-used index. Requires an unlocked wallet.
	CreateAccount(ctx context.Context, name string) (*domain.Account, error)
	// ImportAccount registers an account backed by the given raw private key,
	// stored in the secure store. Requires an unlocked wallet.
	ImportAccount(
		ctx context.Context, name, privateKeyHex string,
	) (*domain.Account, error)
	// RenameAccount changes the display name of the account with the given id.
	RenameAccount(ctx context.Context, id, name string) error
	// DeleteAccount removes the account with the given id together with its
	// secret if imported. Deleting the last account is rejected with
	// ErrLastAccount; deleting the active one promotes the oldest remaining
	// account and, on an unlocked session, rebinds the signer to it.
	DeleteAccount(ctx context.Context, id string) error
	// SwitchAccount makes the account with the given id the active one and,
	// on an unlocked session, publishes its signer in place of the current.
	SwitchAccount(ctx context.Context, id string) (*domain.Account, error)
	// Balances fetches the balance in wei of every account, keyed by address.
	Balances(ctx context.Context) (map[string]*big.Int, error)
}

type accountService struct {
	mtx sync.Mutex

	repoManager ports.RepoManager
	secureStore securestore.SecureStorage
	session     *Session
	chainClient ports.ChainClient
}

// NewAccountService returns a new AccountService.
func NewAccountService(
	repoManager ports.RepoManager,
	secureStore securestore.SecureStorage,
	session *Session,
	chainClient ports.ChainClient,
) AccountService {
	return &accountService{
		repoManager: repoManager,
		secureStore: secureStore,
		session:     session,
		chainClient: chainClient,
	}
}

func (s *accountService) ListAccounts(
	ctx context.Context,
) ([]domain.Account, error) {
	return s.repoManager.AccountRepository().GetAllAccounts(ctx)
}

func (s *accountService) GetActiveAccount(
	ctx context.Context,
) (*domain.Account, error) {
	return s.repoManager.AccountRepository().GetActiveAccount(ctx)
}

func (s *accountService) CreateAccount(
	ctx context.Context, name string,
) (*domain.Account, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.secureStore.IsLocked() {
		return nil, domain.ErrNotUnlocked
	}

	mnemonic, err := storedMnemonic(s.secureStore)
	if err != nil {
		return nil, err
	}
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, domain.ErrCorruptedState
	}

	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	index := domain.NextDerivationIndex(accounts)
	path, err := wallet.AccountDerivationPath(index)
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
		name, key.Address, path.String(), index,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.AccountRepository().AddAccount(ctx, account); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"address": account.Address,
		"index":   index,
	}).Info("account created")

	return account, nil
}

func (s *accountService) ImportAccount(
	ctx context.Context, name, privateKeyHex string,
) (*domain.Account, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.secureStore.IsLocked() {
		return nil, domain.ErrNotUnlocked
	}

	key, err := wallet.FromPrivateKey(wallet.FromPrivateKeyOpts{
		PrivateKeyHex: privateKeyHex,
	})
	if err != nil {
		return nil, err
	}

	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range accounts {
		if existing.Address == key.Address {
			return nil, domain.ErrAccountAlreadyExists
		}
	}

	account, err := domain.NewImportedAccount(name, key.Address)
	if err != nil {
		return nil, err
	}

	// secret first, an orphan secret is harmless while a secretless imported
	// account would be unusable
	if err := s.secureStore.AddToBucket(
		accountsBucketKey, []byte(account.ID), []byte(key.PrivateKeyHex()),
	); err != nil {
		return nil, err
	}
	if err := s.repoManager.AccountRepository().AddAccount(ctx, account); err != nil {
		s.secureStore.RemoveFromBucket(accountsBucketKey, []byte(account.ID))
		return nil, err
	}

	log.WithField("address", account.Address).Info("account imported")

	return account, nil
}

func (s *accountService) RenameAccount(
	ctx context.Context, id, name string,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if len(name) <= 0 {
		return domain.ErrNullAccountName
	}

	return s.repoManager.AccountRepository().UpdateAccount(
		ctx, id, func(a *domain.Account) (*domain.Account, error) {
			a.Name = name
			return a, nil
		},
	)
}

func (s *accountService) DeleteAccount(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return err
	}

	var target *domain.Account
	for i := range accounts {
		if accounts[i].ID == id {
			target = &accounts[i]
			break
		}
	}
	if target == nil {
		return domain.ErrAccountNotFound
	}
	if len(accounts) == 1 {
		return domain.ErrLastAccount
	}
	// removing an imported account must also remove its key
	if !target.IsDerived() && s.secureStore.IsLocked() {
		return domain.ErrNotUnlocked
	}

	if err := s.repoManager.AccountRepository().DeleteAccount(ctx, id); err != nil {
		return err
	}
	if !target.IsDerived() {
		if err := s.secureStore.RemoveFromBucket(
			accountsBucketKey, []byte(id),
		); err != nil {
			return err
		}
	}

	if target.Active {
		// promote the oldest remaining account
		var next *domain.Account
		for i := range accounts {
			if accounts[i].ID != id {
				next = &accounts[i]
				break
			}
		}
		if err := s.repoManager.AccountRepository().SetActiveAccount(
			ctx, next.ID,
		); err != nil {
			return err
		}
		if err := s.rebindSession(ctx, next); err != nil {
			return err
		}
	}

	log.WithField("address", target.Address).Info("account deleted")
	return nil
}

func (s *accountService) SwitchAccount(
	ctx context.Context, id string,
) (*domain.Account, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	account, err := s.repoManager.AccountRepository().GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.AccountRepository().SetActiveAccount(ctx, id); err != nil {
		return nil, err
	}
	account.Active = true

	if err := s.rebindSession(ctx, account); err != nil {
		return nil, err
	}

	log.WithField("address", account.Address).Debug("active account switched")
	return account, nil
}

func (s *accountService) Balances(
	ctx context.Context,
) (map[string]*big.Int, error) {
	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var mtx sync.Mutex
	balances := make(map[string]*big.Int, len(accounts))

	group, gctx := errgroup.WithContext(ctx)
	for i := range accounts {
		account := accounts[i]
		group.Go(func() error {
			balance, err := s.chainClient.BalanceOf(gctx, account.Address)
			if err != nil {
				return err
			}
			mtx.Lock()
			defer mtx.Unlock()
			balances[account.Address] = balance
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return balances, nil
}

// rebindSession replaces the published signer with the given account's one.
// Nothing to do on a locked session, the next unlock picks up the active
// account on its own.
func (s *accountService) rebindSession(
	ctx context.Context, account *domain.Account,
) error {
	current, err := s.session.Signer()
	if err != nil {
		return nil
	}
	if current.AccountID() == account.ID {
		return nil
	}

	epoch := s.session.Epoch()
	signer, err := materializeSigner(ctx, account, s.secureStore, s.chainClient)
	if err != nil {
		s.session.Clear()
		s.secureStore.Lock()
		return err
	}
	return s.session.SetSigner(signer, epoch)
}
