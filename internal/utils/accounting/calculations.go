package accounting

import (
	"fmt"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the account type's normal-balance convention to a
// journal line. The result is positive when the line increases the account's
// balance and negative when it decreases it:
//
//	DEBIT to ASSET/EXPENSE            -> +
//	CREDIT to ASSET/EXPENSE           -> -
//	DEBIT to LIABILITY/EQUITY/REVENUE -> -
//	CREDIT to LIABILITY/EQUITY/REVENUE -> +
//
// Services and repositories share this helper so the sign convention is
// applied identically everywhere.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !domain.ValidAccountType(accountType) {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}

	amount := line.Amount()
	if line.IsDebit() != accountType.IsDebitNormal() {
		amount = amount.Neg()
	}
	return amount, nil
}

// SumDebitsCredits totals both columns of a line set. Comparison of the two
// sums is exact decimal equality; no tolerance is applied at this layer.
func SumDebitsCredits(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.DebitAmount)
		credits = credits.Add(l.CreditAmount)
	}
	return debits, credits
}

// NaturalColumns places a signed net balance into the account's natural debit
// or credit column for trial balance rendering. A negative net flips to the
// opposite column.
func NaturalColumns(net decimal.Decimal, accountType domain.AccountType) (debit, credit decimal.Decimal) {
	debitSide := accountType.IsDebitNormal()
	if net.IsNegative() {
		debitSide = !debitSide
		net = net.Neg()
	}
	if debitSide {
		return net, decimal.Zero
	}
	return decimal.Zero, net
}
