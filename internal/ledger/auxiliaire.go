package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// ErrUnknownSubsidiaryKind is returned for a kind other than clients or
// suppliers.
var ErrUnknownSubsidiaryKind = errors.New("unknown subsidiary ledger kind")

// ParseSubsidiaryKind accepts "clients" or "fournisseurs" in any case.
func ParseSubsidiaryKind(s string) (model.SubsidiaryKind, error) {
	switch k := model.SubsidiaryKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case model.SubsidiaryClients, model.SubsidiarySuppliers:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubsidiaryKind, s)
}

func (o options) prefixFor(kind model.SubsidiaryKind) (string, error) {
	switch kind {
	case model.SubsidiaryClients:
		return o.rules.ClientPrefix, nil
	case model.SubsidiarySuppliers:
		return o.rules.SupplierPrefix, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubsidiaryKind, kind)
}

// ComputeBalanceAuxiliaire builds the subsidiary ledger of clients or
// suppliers: the lines carrying an auxiliary account whose principal account
// starts with the kind's prefix, grouped by auxiliary account (sorted), each
// with its running balance and closing solde.
func ComputeBalanceAuxiliaire(entries []model.Entry, kind model.SubsidiaryKind, period model.Period, opts ...Option) (*model.SubsidiaryLedger, error) {
	o := newOptions(opts)
	prefix, err := o.prefixFor(kind)
	if err != nil {
		return nil, err
	}

	byAux := make(map[string]*model.SubsidiaryAccount)
	for _, p := range chronological(entries) {
		if !p.line.HasAux() || !strings.HasPrefix(p.line.AccountNumber, prefix) {
			continue
		}
		acct, ok := byAux[p.line.AuxAccount]
		if !ok {
			acct = &model.SubsidiaryAccount{AuxAccount: p.line.AuxAccount}
			byAux[p.line.AuxAccount] = acct
		}
		if acct.AuxLabel == "" {
			acct.AuxLabel = p.line.AuxLabel
		}
		acct.Lines = append(acct.Lines, ledgerLine(p))
	}

	keys := make([]string, 0, len(byAux))
	for k := range byAux {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sl := &model.SubsidiaryLedger{
		Kind:        kind,
		Period:      period,
		GeneratedAt: o.generatedAt,
		Accounts:    make([]model.SubsidiaryAccount, 0, len(keys)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, k := range keys {
		acct := byAux[k]
		acct.OpeningBalance = o.openingFor(k)
		acct.TotalDebit, acct.TotalCredit, acct.Solde = fold(acct.OpeningBalance, acct.Lines)
		acct.SoldeDebiteur, acct.SoldeCrediteur = split(acct.Solde)

		sl.TotalDebit = sl.TotalDebit.Add(acct.TotalDebit)
		sl.TotalCredit = sl.TotalCredit.Add(acct.TotalCredit)
		sl.Accounts = append(sl.Accounts, *acct)
	}
	return sl, nil
}
