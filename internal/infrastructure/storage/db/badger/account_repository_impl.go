package dbbadger

import (
	"context"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAccountRepositoryImpl initialize a badger implementation of the
// domain.AccountRepository
func NewAccountRepositoryImpl(store *badgerhold.Store) domain.AccountRepository {
	return accountRepositoryImpl{store: store}
}

func (r accountRepositoryImpl) AddAccount(
	ctx context.Context, account *domain.Account,
) error {
	if err := r.store.Insert(account.ID, *account); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r accountRepositoryImpl) GetAccount(
	ctx context.Context, id string,
) (*domain.Account, error) {
	var account domain.Account
	if err := r.store.Get(id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r accountRepositoryImpl) GetAllAccounts(
	ctx context.Context,
) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	if err := r.store.Find(&accounts, nil); err != nil {
		return nil, err
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r accountRepositoryImpl) GetActiveAccount(
	ctx context.Context,
) (*domain.Account, error) {
	var accounts []domain.Account
	if err := r.store.Find(
		&accounts, badgerhold.Where("Active").Eq(true),
	); err != nil {
		return nil, err
	}
	if len(accounts) <= 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

func (r accountRepositoryImpl) UpdateAccount(
	ctx context.Context, id string,
	updateFn func(*domain.Account) (*domain.Account, error),
) error {
	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var account domain.Account
	if err := r.store.TxGet(tx, id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrAccountNotFound
		}
		return err
	}

	updated, err := updateFn(&account)
	if err != nil {
		return err
	}

	if err := r.store.TxUpdate(tx, id, *updated); err != nil {
		return err
	}
	return tx.Commit()
}

func (r accountRepositoryImpl) SetActiveAccount(
	ctx context.Context, id string,
) error {
	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var accounts []domain.Account
	if err := r.store.TxFind(tx, &accounts, nil); err != nil {
		return err
	}

	found := false
	for _, account := range accounts {
		if account.ID == id {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrAccountNotFound
	}

	// flip every flag within the same transaction so that exactly one
	// account is ever observed as active
	for _, account := range accounts {
		active := account.ID == id
		if account.Active == active {
			continue
		}
		account.Active = active
		if err := r.store.TxUpdate(tx, account.ID, account); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r accountRepositoryImpl) DeleteAccount(
	ctx context.Context, id string,
) error {
	if err := r.store.Delete(id, domain.Account{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrAccountNotFound
		}
		return err
	}
	return nil
}
