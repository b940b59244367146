package model

// AccountClass is the first digit of a PCG account number.
type AccountClass int

const (
	ClassNone         AccountClass = 0
	ClassEquity       AccountClass = 1 // capitaux
	ClassFixedAssets  AccountClass = 2 // immobilisations
	ClassInventory    AccountClass = 3 // stocks et en-cours
	ClassThirdParties AccountClass = 4 // comptes de tiers
	ClassFinancial    AccountClass = 5 // comptes financiers
	ClassExpense      AccountClass = 6 // charges
	ClassRevenue      AccountClass = 7 // produits
)

// BalanceSheet reports whether accounts of this class are carried forward
// between periods.
func (c AccountClass) BalanceSheet() bool {
	return c >= ClassEquity && c <= ClassFinancial
}

// IncomeStatement reports whether accounts of this class reset at closing.
func (c AccountClass) IncomeStatement() bool {
	return c == ClassExpense || c == ClassRevenue
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Number      string
	Label       string
	Class       AccountClass
	Description string
}
