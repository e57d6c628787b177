package dto

import (
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportPeriodParams defines query parameters for period-bounded reports.
type ReportPeriodParams struct {
	FromDate time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02"`
	ToDate   time.Time `form:"toDate" binding:"required" time_format:"2006-01-02"`
}

// AsOfParams defines query parameters for point-in-time reports.
// AsOf defaults to today when omitted.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// IntegrityWarning describes a ledger integrity violation attached to a
// report instead of failing it.
type IntegrityWarning struct {
	Message      string          `json:"message"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	Balanced bool              `json:"balanced"`
	Warning  *IntegrityWarning `json:"warning,omitempty"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalIncome        decimal.Decimal            `json:"totalIncome"`
		TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
		NetIncome          decimal.Decimal            `json:"netIncome"`
		ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	} `json:"summary"`
	BalanceOK bool              `json:"balanceOK"`
	Warning   *IntegrityWarning `json:"warning,omitempty"`
}

// CashFlowItemResponse represents one entry's cash movement within a bucket
type CashFlowItemResponse struct {
	EntryNumber string          `json:"entryNumber"`
	EntryType   string          `json:"entryType"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowSectionResponse represents one cash flow bucket with its total
type CashFlowSectionResponse struct {
	Items []CashFlowItemResponse `json:"items"`
	Total decimal.Decimal        `json:"total"`
}

// CashFlowResponse represents the cash flow report response
type CashFlowResponse struct {
	FromDate        string                  `json:"fromDate"`
	ToDate          string                  `json:"toDate"`
	Operating       CashFlowSectionResponse `json:"operating"`
	Investing       CashFlowSectionResponse `json:"investing"`
	Financing       CashFlowSectionResponse `json:"financing"`
	NetChangeInCash decimal.Decimal         `json:"netChangeInCash"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:     asOf.Format("2006-01-02"),
		Rows:     make([]TrialBalanceRowResponse, len(report.Rows)),
		Balanced: report.Balanced,
	}

	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}

	response.Totals.Debit = report.TotalDebits
	response.Totals.Credit = report.TotalCredits

	if !report.Balanced {
		response.Warning = &IntegrityWarning{
			Message:      "ledger debits and credits do not balance",
			TotalDebits:  report.TotalDebits,
			TotalCredits: report.TotalCredits,
		}
	}

	return response
}

func toAccountAmountResponses(rows []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(rows))
	for i, row := range rows {
		res[i] = AccountAmountResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.Name,
			Category:    row.AccountCategory,
			Amount:      row.NetAmount,
		}
	}
	return res
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(report *domain.IncomeStatementReport, from, to time.Time) IncomeStatementResponse {
	response := IncomeStatementResponse{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
		Revenue:  toAccountAmountResponses(report.Revenue),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	response.Summary.TotalIncome = report.TotalIncome
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetIncome = report.NetIncome
	response.Summary.ExpensesByCategory = report.ExpensesByCategory
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        asOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
		BalanceOK:   report.BalanceOK,
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.RetainedEarnings = report.RetainedEarnings

	if !report.BalanceOK {
		response.Warning = &IntegrityWarning{
			Message:      "assets do not equal liabilities plus equity",
			TotalDebits:  report.TotalAssets,
			TotalCredits: report.TotalLiabilities.Add(report.TotalEquity),
		}
	}

	return response
}

func toCashFlowSection(items []domain.CashFlowItem, total decimal.Decimal) CashFlowSectionResponse {
	section := CashFlowSectionResponse{
		Items: make([]CashFlowItemResponse, len(items)),
		Total: total,
	}
	for i, item := range items {
		section.Items[i] = CashFlowItemResponse{
			EntryNumber: item.EntryNumber,
			EntryType:   string(item.EntryType),
			Description: item.Description,
			Amount:      item.Amount,
		}
	}
	return section
}

// ToCashFlowResponse converts a domain cash flow report to a DTO response
func ToCashFlowResponse(report *domain.CashFlowReport, from, to time.Time) CashFlowResponse {
	return CashFlowResponse{
		FromDate:        from.Format("2006-01-02"),
		ToDate:          to.Format("2006-01-02"),
		Operating:       toCashFlowSection(report.Operating, report.TotalOperating),
		Investing:       toCashFlowSection(report.Investing, report.TotalInvesting),
		Financing:       toCashFlowSection(report.Financing, report.TotalFinancing),
		NetChangeInCash: report.NetChangeInCash,
	}
}
