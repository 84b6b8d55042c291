package inmemory

import (
	"context"
	"sync"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	lock     sync.RWMutex
	accounts map[string]domain.Account
	order    []string
}

// NewAccountRepositoryImpl returns an in-memory implementation of the
// domain.AccountRepository
func NewAccountRepositoryImpl() domain.AccountRepository {
	return &accountRepositoryImpl{
		accounts: make(map[string]domain.Account),
	}
}

func (r *accountRepositoryImpl) AddAccount(
	ctx context.Context, account *domain.Account,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return domain.ErrAccountAlreadyExists
	}
	r.accounts[account.ID] = *account
	r.order = append(r.order, account.ID)
	return nil
}

func (r *accountRepositoryImpl) GetAccount(
	ctx context.Context, id string,
) (*domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *accountRepositoryImpl) GetAllAccounts(
	ctx context.Context,
) ([]domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	accounts := make([]domain.Account, 0, len(r.order))
	for _, id := range r.order {
		accounts = append(accounts, r.accounts[id])
	}
	return accounts, nil
}

func (r *accountRepositoryImpl) GetActiveAccount(
	ctx context.Context,
) (*domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, id := range r.order {
		if account := r.accounts[id]; account.Active {
			return &account, nil
		}
	}
	return nil, nil
}

func (r *accountRepositoryImpl) UpdateAccount(
	ctx context.Context, id string,
	updateFn func(*domain.Account) (*domain.Account, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	updated, err := updateFn(&account)
	if err != nil {
		return err
	}
	r.accounts[id] = *updated
	return nil
}

func (r *accountRepositoryImpl) SetActiveAccount(
	ctx context.Context, id string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	for accountID, account := range r.accounts {
		account.Active = accountID == id
		r.accounts[accountID] = account
	}
	return nil
}

func (r *accountRepositoryImpl) DeleteAccount(
	ctx context.Context, id string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	for i, accountID := range r.order {
		if accountID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
