// Package validation checks a candidate debt payload before anything is
// persisted. All rules are evaluated independently and every violation is
// collected, in the order the rules are declared.
package validation

import (
	"strings"

	"debtledger-backend/models"
)

// Validation messages returned to the caller, in rule order.
const (
	MsgDebtorRequired      = "Debtor information is required."
	MsgDebtorNameRequired  = "Debtor name is required."
	MsgDebtorTaxIDRequired = "Debtor taxId is required."
	MsgDebtorEmailRequired = "Debtor email is required."
	MsgAmountInvalid       = "Amount is required and must be numeric."
	MsgDescriptionRequired = "Description is required."
	MsgStatusInvalid       = `Status must be "Pendente" or "Pago".`
)

// Validate returns the ordered list of violations for a create payload.
// An empty list means the payload is valid. No side effects.
func Validate(input *models.DebtInput) []string {
	var errs []string

	if !input.Debtor.IsObject() {
		errs = append(errs, MsgDebtorRequired)
	} else {
		if strings.TrimSpace(input.Debtor.Name) == "" {
			errs = append(errs, MsgDebtorNameRequired)
		}
		if strings.TrimSpace(input.Debtor.TaxID) == "" {
			errs = append(errs, MsgDebtorTaxIDRequired)
		}
		if strings.TrimSpace(input.Debtor.Email) == "" {
			errs = append(errs, MsgDebtorEmailRequired)
		}
	}

	if _, ok := models.AmountValue(input.Amount); !ok {
		errs = append(errs, MsgAmountInvalid)
	}

	if strings.TrimSpace(input.Description) == "" {
		errs = append(errs, MsgDescriptionRequired)
	}

	status := models.DebtStatus(input.Status)
	if status != models.StatusPending && status != models.StatusPaid {
		errs = append(errs, MsgStatusInvalid)
	}

	return errs
}
