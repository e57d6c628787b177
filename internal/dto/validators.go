package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires ledger-specific checks into gin's binding
// validator. Call once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(postEntryLineValidation, PostEntryLine{})
	}
}

// postEntryLineValidation rejects lines carrying a negative amount or both a
// debit and a credit. The cross-line balance check lives in the service.
func postEntryLineValidation(sl validator.StructLevel) {
	line := sl.Current().Interface().(PostEntryLine)
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		sl.ReportError(line.DebitAmount, "debitAmount", "DebitAmount", "nonnegative", "")
	}
	if line.DebitAmount.IsPositive() && line.CreditAmount.IsPositive() {
		sl.ReportError(line.CreditAmount, "creditAmount", "CreditAmount", "onesided", "")
	}
}
