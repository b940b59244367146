package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/compta/internal/model"
)

// ChartFile is the chart location relative to a project root.
const ChartFile = "plan-comptable.csv"

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byNumber map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byNumber := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byNumber[a.Number] = a
	}
	return &Service{accounts: accounts, byNumber: byNumber}
}

// Load reads plan-comptable.csv from a project root and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, ChartFile))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by number.
func (s *Service) Get(number string) (model.Account, bool) {
	a, ok := s.byNumber[number]
	return a, ok
}

// Exists reports whether an account number is in the chart.
func (s *Service) Exists(number string) bool {
	_, ok := s.byNumber[number]
	return ok
}

// Label returns the label of the account, or of the longest chart account
// the number extends (e.g. "411" for "411DUP"). Empty when nothing matches.
func (s *Service) Label(number string) string {
	for n := number; n != ""; n = n[:len(n)-1] {
		if a, ok := s.byNumber[n]; ok {
			return a.Label
		}
	}
	return ""
}

// ByClass returns the accounts of a class, sorted by number.
func (s *Service) ByClass(class model.AccountClass) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Class == class {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.Compare(result[i].Number, result[j].Number) < 0
	})
	return result
}

// Save writes the chart of accounts to plan-comptable.csv under root.
func (s *Service) Save(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("creating project dir: %w", err)
	}

	f, err := os.Create(filepath.Join(root, ChartFile))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
