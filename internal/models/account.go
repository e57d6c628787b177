package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts table row.
// Note: ParentAccountID uses string for the nullable self-referencing FK;
// empty string maps to NULL.
type Account struct {
	AccountID       string          `db:"account_id"`
	CompanyID       string          `db:"company_id"`
	AccountCode     string          `db:"account_code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	AccountCategory string          `db:"account_category"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	OpeningBalance  decimal.Decimal `db:"opening_balance"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	IsSystemAccount bool            `db:"is_system_account"`
	AuditFields
}
