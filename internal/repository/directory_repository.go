package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/domain/ledger"
	"github.com/barbizo19/Bankist/internal/pkg/crypto"
)

var (
	// ErrAccountNotFound means no account in the directory has the handle.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance means the sender's derived balance cannot cover
	// the transfer amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicateHandle is a seed-data integrity error: two owners derived
	// the same handle at directory build time.
	ErrDuplicateHandle = errors.New("duplicate handle")
)

type DirectoryRepository interface {
	GetByHandle(handle string) (*account.Account, error)
	List() []*account.Account
	AppendMovement(handle string, amount decimal.Decimal) error
	ExecuteTransfer(fromHandle, toHandle string, amount decimal.Decimal) error
	Remove(handle string) error
	Count() int
}

// directoryRepository is the process-resident account directory. A single
// mutex serializes every read and write so cross-account operations
// (transfers) complete atomically: both movements are appended inside one
// critical section or neither is.
type directoryRepository struct {
	mu    sync.Mutex
	order []string
	accts map[string]*account.Account
}

// NewDirectoryRepository builds the directory from static seed data. Handles
// are derived before first use; an owner with no name tokens or a derived
// handle collision rejects the whole seed set.
func NewDirectoryRepository(seeds []account.Seed) (DirectoryRepository, error) {
	r := &directoryRepository{
		accts: make(map[string]*account.Account, len(seeds)),
	}

	for _, seed := range seeds {
		handle, err := account.DeriveHandle(seed.Owner)
		if err != nil {
			return nil, fmt.Errorf("invalid seed account %q: %w", seed.Owner, err)
		}
		if _, exists := r.accts[handle]; exists {
			return nil, fmt.Errorf("seed accounts %q: %w: %s", seed.Owner, ErrDuplicateHandle, handle)
		}

		pinHash, err := crypto.HashPIN(seed.PIN)
		if err != nil {
			return nil, fmt.Errorf("failed to hash PIN for %q: %w", seed.Owner, err)
		}

		movements := make([]decimal.Decimal, len(seed.Movements))
		copy(movements, seed.Movements)

		r.accts[handle] = &account.Account{
			ID:           uuid.New(),
			Owner:        seed.Owner,
			Handle:       handle,
			PINHash:      pinHash,
			Movements:    movements,
			InterestRate: seed.InterestRate,
			CreatedAt:    time.Now(),
		}
		r.order = append(r.order, handle)
	}

	return r, nil
}

// copyOut returns a snapshot so callers cannot mutate internal state
func copyOut(a *account.Account) *account.Account {
	cp := *a
	cp.Movements = make([]decimal.Decimal, len(a.Movements))
	copy(cp.Movements, a.Movements)
	return &cp
}

func (r *directoryRepository) GetByHandle(handle string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accts[handle]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return copyOut(a), nil
}

// List returns account snapshots in insertion order
func (r *directoryRepository) List() []*account.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*account.Account, 0, len(r.order))
	for _, handle := range r.order {
		out = append(out, copyOut(r.accts[handle]))
	}
	return out
}

func (r *directoryRepository) AppendMovement(handle string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accts[handle]
	if !ok {
		return ErrAccountNotFound
	}
	a.Movements = append(a.Movements, amount)
	return nil
}

// ExecuteTransfer appends -amount to the sender and +amount to the recipient
// inside one critical section. The balance check runs atomically with the
// mutation, so no partial transfer can be observed and no check-then-act race
// exists even if the engine is ever driven concurrently.
func (r *directoryRepository) ExecuteTransfer(fromHandle, toHandle string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.accts[fromHandle]
	if !ok {
		return ErrAccountNotFound
	}
	to, ok := r.accts[toHandle]
	if !ok {
		return ErrAccountNotFound
	}

	if ledger.Balance(from.Movements).LessThan(amount) {
		return ErrInsufficientBalance
	}

	from.Movements = append(from.Movements, amount.Neg())
	to.Movements = append(to.Movements, amount)
	return nil
}

func (r *directoryRepository) Remove(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accts[handle]; !ok {
		return ErrAccountNotFound
	}
	delete(r.accts, handle)
	for i, h := range r.order {
		if h == handle {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *directoryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accts)
}
