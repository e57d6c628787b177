package mapping

import (
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/paperledger/paper_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		CompanyID:       d.CompanyID,
		AccountCode:     d.AccountCode,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		AccountCategory: d.AccountCategory,
		ParentAccountID: d.ParentAccountID,
		OpeningBalance:  d.OpeningBalance,
		Description:     d.Description,
		IsActive:        d.IsActive,
		IsSystemAccount: d.IsSystemAccount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		CompanyID:       m.CompanyID,
		AccountCode:     m.AccountCode,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		AccountCategory: m.AccountCategory,
		ParentAccountID: m.ParentAccountID,
		OpeningBalance:  m.OpeningBalance,
		Description:     m.Description,
		IsActive:        m.IsActive,
		IsSystemAccount: m.IsSystemAccount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
