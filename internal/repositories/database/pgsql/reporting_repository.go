package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface. Every
// method is one grouped query; nothing here iterates accounts in app code.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountActivity sums both columns for one account over an optional
// inclusive date window.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, companyID string, accountID string, fromDate *time.Time, toDate *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT
			COALESCE(SUM(l.debit_amount), 0) AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.company_id = $2`)
	args := []interface{}{accountID, companyID}

	if fromDate != nil {
		args = append(args, *fromDate)
		sb.WriteString(" AND e.entry_date >= $" + strconv.Itoa(len(args)))
	}
	if toDate != nil {
		args = append(args, *toDate)
		sb.WriteString(" AND e.entry_date <= $" + strconv.Itoa(len(args)))
	}

	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, sb.String(), args...).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying account activity for %s: %w", accountID, err)
	}
	return debits, credits, nil
}

// activityQuery builds the grouped per-account aggregation. Accounts without
// activity in the window still produce a row (LEFT JOIN against the filtered
// line set) so their opening balances participate in reports.
func activityQuery(dateConds string, accountConds string) string {
	return `
		SELECT
			a.account_id,
			a.account_code,
			a.name,
			a.account_type,
			a.account_category,
			a.opening_balance,
			COALESCE(SUM(act.debit_amount), 0) AS total_debit,
			COALESCE(SUM(act.credit_amount), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit_amount, l.credit_amount
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.company_id = $1` + dateConds + `
		) act ON act.account_id = a.account_id
		WHERE a.company_id = $1` + accountConds + `
		GROUP BY a.account_id, a.account_code, a.name, a.account_type, a.account_category, a.opening_balance
		ORDER BY a.account_code;
	`
}

func (r *reportingRepository) scanActivities(ctx context.Context, query string, args []interface{}) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var act domain.AccountActivity
		var accountType, category string
		var code sql.NullString

		if err := rows.Scan(
			&act.AccountID,
			&code,
			&act.AccountName,
			&accountType,
			&category,
			&act.OpeningBalance,
			&act.Debits,
			&act.Credits,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}
		act.AccountCode = code.String
		act.AccountType = domain.AccountType(accountType)
		act.AccountCategory = category
		result = append(result, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}

// GetTypeActivity returns per-account activity for one account type over an
// optional date window.
func (r *reportingRepository) GetTypeActivity(ctx context.Context, companyID string, accountType domain.AccountType, fromDate *time.Time, toDate *time.Time, activeOnly bool) ([]domain.AccountActivity, error) {
	args := []interface{}{companyID, string(accountType)}
	accountConds := " AND a.account_type = $2"
	if activeOnly {
		accountConds += " AND a.is_active = TRUE"
	}

	dateConds := ""
	if fromDate != nil {
		args = append(args, *fromDate)
		dateConds += " AND e.entry_date >= $" + strconv.Itoa(len(args))
	}
	if toDate != nil {
		args = append(args, *toDate)
		dateConds += " AND e.entry_date <= $" + strconv.Itoa(len(args))
	}

	return r.scanActivities(ctx, activityQuery(dateConds, accountConds), args)
}

// GetTrialBalanceData returns per-account activity for every account of the
// company up to and including asOf.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := []interface{}{companyID, asOf}
	return r.scanActivities(ctx, activityQuery(" AND e.entry_date <= $2", ""), args)
}

// GetCashFlowEntries returns the net cash movement per entry over the period.
// Only lines hitting accounts whose category is in cashCategories count; a
// debit to a cash account is an inflow, a credit an outflow.
func (r *reportingRepository) GetCashFlowEntries(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time, cashCategories []string) ([]domain.EntryCashMovement, error) {
	query := `
		SELECT
			e.entry_id,
			e.entry_number,
			e.entry_type,
			COALESCE(e.reference_type, '') AS reference_type,
			e.description,
			SUM(l.debit_amount - l.credit_amount) AS movement
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1
			AND e.entry_date >= $2
			AND e.entry_date <= $3
			AND a.account_category = ANY($4)
		GROUP BY e.entry_id, e.entry_number, e.entry_type, e.reference_type, e.description
		ORDER BY e.entry_date, e.entry_number;
	`

	rows, err := r.Pool.Query(ctx, query, companyID, fromDate, toDate, cashCategories)
	if err != nil {
		return nil, fmt.Errorf("error querying cash flow entries: %w", err)
	}
	defer rows.Close()

	result := []domain.EntryCashMovement{}
	for rows.Next() {
		var m domain.EntryCashMovement
		var entryType string

		if err := rows.Scan(
			&m.EntryID,
			&m.EntryNumber,
			&entryType,
			&m.ReferenceType,
			&m.Description,
			&m.Movement,
		); err != nil {
			return nil, fmt.Errorf("error scanning cash flow row: %w", err)
		}
		m.EntryType = domain.EntryType(entryType)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flow rows: %w", err)
	}
	return result, nil
}
