package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account in a trial balance report, with
// its net balance placed in its natural debit or credit column.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with activity plus the global column
// sums. Balanced is false when the sums differ, which indicates ledger
// corruption and is surfaced alongside a LedgerIntegrityError.
type TrialBalanceReport struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// AccountActivity is one row of the grouped ledger aggregation: the debit and
// credit sums for a single account over a query window, together with the
// account metadata needed to interpret them. All balance and report math
// derives from slices of these rows.
type AccountActivity struct {
	AccountID       string
	AccountCode     string
	AccountName     string
	AccountType     AccountType
	AccountCategory string
	OpeningBalance  decimal.Decimal
	Debits          decimal.Decimal
	Credits         decimal.Decimal
}

// AccountAmount pairs an account with a net amount for report rows.
type AccountAmount struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	Name            string          `json:"name"`
	AccountCategory string          `json:"accountCategory"`
	NetAmount       decimal.Decimal `json:"netAmount"`
}

// IncomeStatementReport covers a period: revenue and expense flows plus the
// expense breakdown by account category.
type IncomeStatementReport struct {
	Revenue            []AccountAmount            `json:"revenue"`
	Expenses           []AccountAmount            `json:"expenses"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	NetIncome          decimal.Decimal            `json:"netIncome"`
}

// BalanceSheetReport is a point-in-time statement. BalanceOK is false when
// Assets != Liabilities + Equity, which signals an unbalanced historical entry
// or a missing equity rollup and must be flagged, not hidden.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"` // Folded into TotalEquity
	BalanceOK        bool            `json:"balanceOK"`
}

// CashFlowBucket identifies one of the three statutory cash flow sections.
type CashFlowBucket string

const (
	CashFlowOperating CashFlowBucket = "OPERATING"
	CashFlowInvesting CashFlowBucket = "INVESTING"
	CashFlowFinancing CashFlowBucket = "FINANCING"
)

/// EntryCashMovement is one row of the cash flow aggregation: the net movement
// (debits minus credits) an entry produced across a company's cash accounts,
// with the fields the classification rules operate on.
type EntryCashMovement struct {
	EntryID       string
	EntryNumber   string
	EntryType     EntryType
	ReferenceType string
	Description   string
	Movement      decimal.Decimal
}

// CashFlowItem is a single entry's cash movement within a bucket.
type CashFlowItem struct {
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	EntryType   EntryType       `json:"entryType"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Positive = cash in, negative = cash out
}

// CashFlowReport groups period cash movements into Operating/Investing/
// Financing buckets per the configured classification rules.
type CashFlowReport struct {
	Operating       []CashFlowItem  `json:"operating"`
	Investing       []CashFlowItem  `json:"investing"`
	Financing       []CashFlowItem  `json:"financing"`
	TotalOperating  decimal.Decimal `json:"totalOperating"`
	TotalInvesting  decimal.Decimal `json:"totalInvesting"`
	TotalFinancing  decimal.Decimal `json:"totalFinancing"`
	NetChangeInCash decimal.Decimal `json:"netChangeInCash"`
}

// CashFlowRules is the external, versioned classification configuration. The
// exact mapping is supplied by the caller (loaded from config), never inferred
// in code.
type CashFlowRules struct {
	Version int `json:"version" mapstructure:"version"`
	// CashCategories lists accountCategory values treated as cash/bank.
	CashCategories []string `json:"cashCategories" mapstructure:"cash_categories"`
	// EntryTypes maps EntryType values to buckets.
	EntryTypes map[string]CashFlowBucket `json:"entryTypes" mapstructure:"entry_types"`
	// ReferenceTypes maps referenceType values to buckets and wins over
	// EntryTypes when both match.
	ReferenceTypes map[string]CashFlowBucket `json:"referenceTypes" mapstructure:"reference_types"`
	// DefaultBucket receives entries no rule matches.
	DefaultBucket CashFlowBucket `json:"defaultBucket" mapstructure:"default_bucket"`
}

// Classify resolves the bucket for an entry's type and reference type.
func (r CashFlowRules) Classify(entryType EntryType, referenceType string) CashFlowBucket {
	if referenceType != "" {
		if b, ok := r.ReferenceTypes[referenceType]; ok {
			return b
		}
	}
	if b, ok := r.EntryTypes[string(entryType)]; ok {
		return b
	}
	if r.DefaultBucket != "" {
		return r.DefaultBucket
	}
	return CashFlowOperating
}

// IsCashCategory reports whether the given account category is part of the
// configured cash/bank set.
func (r CashFlowRules) IsCashCategory(category string) bool {
	for _, c := range r.CashCategories {
		if c == category {
			return true
		}
	}
	return false
}
