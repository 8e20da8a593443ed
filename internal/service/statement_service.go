package service

import (
	"sort"

	"github.com/barbizo19/Bankist/internal/domain/account"
	"github.com/barbizo19/Bankist/internal/domain/ledger"
	"github.com/barbizo19/Bankist/internal/domain/session"
	"github.com/barbizo19/Bankist/internal/repository"
)

type StatementService interface {
	Statement(handle string) (*account.StatementResponse, error)
	ToggleSort(handle string) (*account.StatementResponse, error)
}

type statementService struct {
	directory repository.DirectoryRepository
	sessions  *session.Store
}

func NewStatementService(directory repository.DirectoryRepository, sessions *session.Store) StatementService {
	return &statementService{
		directory: directory,
		sessions:  sessions,
	}
}

// Statement builds the view-model for the collaborator: movements in render
// order (insertion order, or ascending by amount when the session's sort
// toggle is on) plus the derived aggregates. The stored sequence is never
// reordered; sorting happens on a copy.
func (s *statementService) Statement(handle string) (*account.StatementResponse, error) {
	acc, err := s.directory.GetByHandle(handle)
	if err != nil {
		return nil, err
	}

	sorted := s.sessions.Sorted()
	movs := acc.Movements
	if sorted {
		movs = append(movs[:0:0], movs...)
		sort.Slice(movs, func(i, j int) bool {
			return movs[i].LessThan(movs[j])
		})
	}

	views := make([]account.MovementView, len(movs))
	for i, mov := range movs {
		movType := "withdrawal"
		if mov.IsPositive() {
			movType = "deposit"
		}
		views[i] = account.MovementView{
			Position: i + 1,
			Type:     movType,
			Amount:   mov,
		}
	}

	return &account.StatementResponse{
		Owner:              acc.Owner,
		Handle:             acc.Handle,
		Movements:          views,
		Sorted:             sorted,
		Balance:            ledger.Balance(acc.Movements),
		TotalIncome:        ledger.TotalIncome(acc.Movements),
		TotalExpense:       ledger.TotalExpense(acc.Movements),
		QualifyingInterest: ledger.QualifyingInterest(acc.Movements, acc.InterestRate),
	}, nil
}

// ToggleSort flips the session's sort toggle and returns the refreshed view
func (s *statementService) ToggleSort(handle string) (*account.StatementResponse, error) {
	s.sessions.ToggleSorted()
	return s.Statement(handle)
}
