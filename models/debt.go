package models

import (
	"time"
)

// DebtStatus represents the settlement status of a debt
type DebtStatus string

const (
	StatusPending DebtStatus = "Pendente"
	StatusPaid    DebtStatus = "Pago"
)

// Address holds the optional debtor address fields, defaulting to empty strings
type Address struct {
	PostalCode string `json:"postalCode"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
}

// Debtor represents the party owing a debt
type Debtor struct {
	Name    string  `json:"name"`
	TaxID   string  `json:"taxId"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

// DebtRecord represents a debt entity as persisted and served
type DebtRecord struct {
	ID             string     `json:"id"`
	Debtor         Debtor     `json:"debtor"`
	Amount         float64    `json:"amount"`
	Description    string     `json:"description"`
	Status         DebtStatus `json:"status"`
	CaseNumber     string     `json:"caseNumber"`
	AttachmentPath *string    `json:"attachmentPath"`
	CreatedAt      time.Time  `json:"createdAt"`
}
