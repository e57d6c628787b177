package domain_test

import (
	"testing"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalLine_ValidateDirection(t *testing.T) {
	tests := []struct {
		name string
		line domain.JournalLine
		want bool
	}{
		{
			name: "debit line",
			line: domain.JournalLine{
				DebitAmount:  decimal.NewFromFloat(100.00),
				CreditAmount: decimal.Zero,
			},
			want: true,
		},
		{
			name: "credit line",
			line: domain.JournalLine{
				DebitAmount:  decimal.Zero,
				CreditAmount: decimal.NewFromFloat(100.00),
			},
			want: true,
		},
		{
			name: "both sides zero",
			line: domain.JournalLine{
				DebitAmount:  decimal.Zero,
				CreditAmount: decimal.Zero,
			},
			want: false,
		},
		{
			name: "both sides nonzero",
			line: domain.JournalLine{
				DebitAmount:  decimal.NewFromFloat(50.00),
				CreditAmount: decimal.NewFromFloat(50.00),
			},
			want: false,
		},
		{
			name: "negative debit",
			line: domain.JournalLine{
				DebitAmount:  decimal.NewFromFloat(-10.00),
				CreditAmount: decimal.Zero,
			},
			want: false,
		},
		{
			name: "negative credit with positive debit",
			line: domain.JournalLine{
				DebitAmount:  decimal.NewFromFloat(10.00),
				CreditAmount: decimal.NewFromFloat(-10.00),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.ValidateDirection())
		})
	}
}

func TestJournalLine_Amount(t *testing.T) {
	debit := domain.JournalLine{DebitAmount: decimal.NewFromFloat(42.50), CreditAmount: decimal.Zero}
	credit := domain.JournalLine{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromFloat(42.50)}

	assert.True(t, debit.IsDebit())
	assert.False(t, credit.IsDebit())
	assert.True(t, debit.Amount().Equal(decimal.NewFromFloat(42.50)))
	assert.True(t, credit.Amount().Equal(decimal.NewFromFloat(42.50)))
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	assert.True(t, domain.Asset.IsDebitNormal())
	assert.True(t, domain.Expense.IsDebitNormal())
	assert.False(t, domain.Liability.IsDebitNormal())
	assert.False(t, domain.Equity.IsDebitNormal())
	assert.False(t, domain.Revenue.IsDebitNormal())
}

func TestCashFlowRules_Classify(t *testing.T) {
	rules := domain.CashFlowRules{
		EntryTypes: map[string]domain.CashFlowBucket{
			"PAYMENT": domain.CashFlowOperating,
			"INVOICE": domain.CashFlowOperating,
		},
		ReferenceTypes: map[string]domain.CashFlowBucket{
			"loan":  domain.CashFlowFinancing,
			"asset": domain.CashFlowInvesting,
		},
		DefaultBucket: domain.CashFlowOperating,
	}

	// referenceType rules win over entryType rules
	assert.Equal(t, domain.CashFlowFinancing, rules.Classify(domain.EntryTypePayment, "loan"))
	assert.Equal(t, domain.CashFlowInvesting, rules.Classify(domain.EntryTypeJournal, "asset"))
	assert.Equal(t, domain.CashFlowOperating, rules.Classify(domain.EntryTypePayment, ""))
	// unmapped falls back to the default bucket
	assert.Equal(t, domain.CashFlowOperating, rules.Classify(domain.EntryTypeAdjustment, "unknown"))
}
