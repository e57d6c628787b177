package accounting_test

import (
	"testing"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/paperledger/paper_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitLine(amount float64) domain.JournalLine {
	return domain.JournalLine{DebitAmount: decimal.NewFromFloat(amount), CreditAmount: decimal.Zero}
}

func creditLine(amount float64) domain.JournalLine {
	return domain.JournalLine{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromFloat(amount)}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalLine
		accountType domain.AccountType
		want        float64
	}{
		{"debit to asset increases", debitLine(100), domain.Asset, 100},
		{"credit to asset decreases", creditLine(100), domain.Asset, -100},
		{"debit to expense increases", debitLine(25.50), domain.Expense, 25.50},
		{"credit to expense decreases", creditLine(25.50), domain.Expense, -25.50},
		{"credit to revenue increases", creditLine(500), domain.Revenue, 500},
		{"debit to revenue decreases", debitLine(500), domain.Revenue, -500},
		{"credit to liability increases", creditLine(75), domain.Liability, 75},
		{"debit to liability decreases", debitLine(75), domain.Liability, -75},
		{"credit to equity increases", creditLine(1000), domain.Equity, 1000},
		{"debit to equity decreases", debitLine(1000), domain.Equity, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)),
				"got %s, want %v", got.String(), tt.want)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := accounting.SignedAmount(debitLine(10), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestSumDebitsCredits(t *testing.T) {
	lines := []domain.JournalLine{debitLine(100), creditLine(90), debitLine(40), creditLine(50)}
	debits, credits := accounting.SumDebitsCredits(lines)
	assert.True(t, debits.Equal(decimal.NewFromInt(140)))
	assert.True(t, credits.Equal(decimal.NewFromInt(140)))
}

func TestNaturalColumns(t *testing.T) {
	// positive asset net lands in the debit column
	d, c := accounting.NaturalColumns(decimal.NewFromInt(100), domain.Asset)
	assert.True(t, d.Equal(decimal.NewFromInt(100)))
	assert.True(t, c.IsZero())

	// positive revenue net lands in the credit column
	d, c = accounting.NaturalColumns(decimal.NewFromInt(200), domain.Revenue)
	assert.True(t, d.IsZero())
	assert.True(t, c.Equal(decimal.NewFromInt(200)))

	// negative net flips to the opposite column
	d, c = accounting.NaturalColumns(decimal.NewFromInt(-30), domain.Asset)
	assert.True(t, d.IsZero())
	assert.True(t, c.Equal(decimal.NewFromInt(30)))
}
