package dto

import (
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountCode     string             `json:"accountCode" binding:"required,max=20"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountCategory string             `json:"accountCategory" binding:"required"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	OpeningBalance  *decimal.Decimal   `json:"openingBalance"`  // Optional, defaults to zero
	Description     string             `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// AccountCode, AccountType and OpeningBalance are accepted only so the service
// can reject change attempts with ErrImmutableField.
type UpdateAccountRequest struct {
	AccountCode     *string             `json:"accountCode"`
	Name            *string             `json:"name"`
	AccountType     *domain.AccountType `json:"accountType"`
	AccountCategory *string             `json:"accountCategory"`
	ParentAccountID *string             `json:"parentAccountID"`
	OpeningBalance  *decimal.Decimal    `json:"openingBalance"`
	Description     *string             `json:"description"`
	IsActive        *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	CompanyID       string             `json:"companyID"`
	AccountCode     string             `json:"accountCode"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	AccountCategory string             `json:"accountCategory"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if null in DB
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	IsSystemAccount bool               `json:"isSystemAccount"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType *string `form:"accountType"`
	ActiveOnly  bool    `form:"activeOnly,default=false"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      string          `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		CompanyID:       acc.CompanyID,
		AccountCode:     acc.AccountCode,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		AccountCategory: acc.AccountCategory,
		ParentAccountID: acc.ParentAccountID,
		OpeningBalance:  acc.OpeningBalance,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		IsSystemAccount: acc.IsSystemAccount,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
