package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found, or that
// it belongs to a different company (cross-tenant reads are reported as not
// found to avoid leaking existence).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrTimeout indicates a query exceeded its deadline. Callers may retry.
var ErrTimeout = errors.New("query timed out")

// ErrImmutableField indicates an attempt to change a field that is fixed after
// creation (account type, account code).
var ErrImmutableField = errors.New("field is immutable after creation")

// ErrInvalidHierarchy indicates a parent account assignment that violates the
// hierarchy rules (missing parent, different company, different account type,
// or a cycle).
var ErrInvalidHierarchy = errors.New("invalid account hierarchy")

// ErrAccountInUse indicates an account cannot be deleted because journal lines
// reference it.
var ErrAccountInUse = errors.New("account is referenced by journal lines")

// ErrProtectedAccount indicates an operation on a system account that end
// users may not modify or delete.
var ErrProtectedAccount = errors.New("account is a protected system account")

// ErrUnbalancedEntry is the sentinel matched by errors.Is for
// UnbalancedEntryError values.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// ErrLedgerIntegrity is the sentinel matched by errors.Is for
// LedgerIntegrityError values.
var ErrLedgerIntegrity = errors.New("ledger integrity violation")

// UnbalancedEntryError reports the exact imbalance of a rejected entry so the
// caller can render "debits != credits by X".
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// Imbalance returns the absolute difference between the debit and credit sums.
func (e *UnbalancedEntryError) Imbalance() decimal.Decimal {
	return e.Debits.Sub(e.Credits).Abs()
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry debits and credits do not balance: debits %s, credits %s, imbalance %s",
		e.Debits.String(), e.Credits.String(), e.Imbalance().String())
}

// Is lets errors.Is(err, ErrUnbalancedEntry) match.
func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrUnbalancedEntry
}

// LedgerIntegrityError flags historical data whose column sums no longer
// balance. It is surfaced on reports and never blocks the request that
// detected it.
type LedgerIntegrityError struct {
	CompanyID    string
	Detail       string
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func (e *LedgerIntegrityError) Error() string {
	return fmt.Sprintf("ledger integrity violation for company %s: %s (debits %s, credits %s)",
		e.CompanyID, e.Detail, e.TotalDebits.String(), e.TotalCredits.String())
}

// Is lets errors.Is(err, ErrLedgerIntegrity) match.
func (e *LedgerIntegrityError) Is(target error) bool {
	return target == ErrLedgerIntegrity
}

// AppError wraps a lower-level failure with a stable code and message.
// Repositories use it for unexpected database errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
