package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
	"github.com/paperledger/paper_ledger_app/internal/models"
	"github.com/paperledger/paper_ledger_app/internal/utils/mapping"
	"github.com/paperledger/paper_ledger_app/internal/utils/pagination"
)

// entryNumberFormat renders the allocated sequence value, e.g. "JE-000042".
const entryNumberFormat = "JE-%06d"

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry persists a journal entry with its lines atomically. The entry
// number comes from the company's sequence row, allocated inside the same
// transaction, so concurrent postings cannot collide and an aborted posting
// only leaves a gap.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Allocate the next entry number for the company.
	var lastNumber int64
	err = tx.QueryRow(ctx, `
		INSERT INTO entry_sequences (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_number = entry_sequences.last_number + 1
		RETURNING last_number;
	`, entry.CompanyID).Scan(&lastNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to allocate entry number for company "+entry.CompanyID, err)
	}
	entry.EntryNumber = fmt.Sprintf(entryNumberFormat, lastNumber)

	// 2. Insert the entry header.
	modelEntry := mapping.ToModelJournalEntry(entry)

	var refType, refID sql.NullString
	if modelEntry.ReferenceType != "" {
		refType = sql.NullString{String: modelEntry.ReferenceType, Valid: true}
	}
	if modelEntry.ReferenceID != "" {
		refID = sql.NullString{String: modelEntry.ReferenceID, Valid: true}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, company_id, entry_number, entry_date, entry_type,
			description, notes, reference_type, reference_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		modelEntry.EntryID,
		modelEntry.CompanyID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.EntryType,
		modelEntry.Description,
		modelEntry.Notes,
		refType,
		refID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	// 3. Insert the lines as one batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit_amount, credit_amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.Description,
			modelLine.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal lines for entry "+modelEntry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Lines = lines
	entry.LineCount = len(lines)
	return &entry, nil
}

// FindEntryByID retrieves an entry header scoped to a company.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, company_id, entry_number, entry_date, entry_type,
		       description, notes, reference_type, reference_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE entry_id = $1 AND company_id = $2;
	`
	var m models.JournalEntry
	var notes sql.NullString
	var refType, refID sql.NullString

	err := r.Pool.QueryRow(ctx, query, entryID, companyID).Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.Description,
		&notes,
		&refType,
		&refID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	m.Notes = notes.String
	m.ReferenceType = refType.String
	m.ReferenceID = refID.String

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit_amount, credit_amount, description, created_at
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.Description,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListEntriesByCompany retrieves a page of entry headers, newest first, with
// per-entry line counts. Pagination is keyset on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, filter portsrepo.EntryListFilter, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`
		SELECT e.entry_id, e.company_id, e.entry_number, e.entry_date, e.entry_type,
		       e.description, e.notes, e.reference_type, e.reference_id,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
		       (SELECT COUNT(*) FROM journal_lines l WHERE l.entry_id = e.entry_id) AS line_count
		FROM journal_entries e
		WHERE e.company_id = $1`)
	args := []interface{}{companyID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		sb.WriteString(" AND e.entry_date >= $" + strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		sb.WriteString(" AND e.entry_date <= $" + strconv.Itoa(len(args)))
	}
	if filter.EntryType != nil {
		args = append(args, string(*filter.EntryType))
		sb.WriteString(" AND e.entry_type = $" + strconv.Itoa(len(args)))
	}

	if nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(nextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		sb.WriteString(fmt.Sprintf(" AND (e.entry_date, e.created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, fetchLimit)
	sb.WriteString(" ORDER BY e.entry_date DESC, e.created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query journal entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalEntry
		var notes, refType, refID sql.NullString
		if err := rows.Scan(
			&m.EntryID,
			&m.CompanyID,
			&m.EntryNumber,
			&m.EntryDate,
			&m.EntryType,
			&m.Description,
			&notes,
			&refType,
			&refID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.LineCount,
		); err != nil {
			return nil, "", apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		m.Notes = notes.String
		m.ReferenceType = refType.String
		m.ReferenceID = refID.String
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	token := ""
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		modelEntries = modelEntries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(modelEntries), token, nil
}

// ListLinesByAccountID retrieves a page of lines touching one account, newest
// entry first, each joined with its entry header context.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, companyID string, accountID string, limit int, nextToken string) ([]domain.JournalLine, string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit_amount, l.credit_amount, l.description, l.created_at,
		       e.entry_date, e.entry_number, e.description
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.company_id = $2`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	args := []interface{}{accountID, companyID}
	query := baseQuery
	if nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(nextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (e.entry_date, l.created_at) < ($3, $4)`
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query journal lines for account "+accountID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.Description,
			&m.CreatedAt,
			&m.EntryDate,
			&m.EntryNumber,
			&m.EntryDescription,
		); err != nil {
			return nil, "", apperrors.NewAppError(500, "failed to scan journal line row for account "+accountID, err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", apperrors.NewAppError(500, "error iterating journal line rows for account "+accountID, err)
	}

	token := ""
	if len(modelLines) > limit {
		last := modelLines[limit-1]
		token = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		modelLines = modelLines[:limit]
	}

	return mapping.ToDomainJournalLineSlice(modelLines), token, nil
}
