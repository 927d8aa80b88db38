package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DebtInput is the inbound create payload, decoded from the JSON string
// carried in the multipart "data" field. Fields stay loose here so the
// validator can report every defect instead of the decoder failing the
// whole payload.
type DebtInput struct {
	Debtor      *DebtorInput `json:"debtor"`
	Amount      any          `json:"amount"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	CaseNumber  string       `json:"caseNumber"`
}

// DebtorInput mirrors Debtor for inbound payloads
type DebtorInput struct {
	Name    string   `json:"name"`
	TaxID   string   `json:"taxId"`
	Email   string   `json:"email"`
	Address *Address `json:"address"`

	object bool
}

// UnmarshalJSON tolerates a non-object "debtor" value; the validator
// reports it as a missing debtor rather than a decode failure.
func (d *DebtorInput) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	type alias DebtorInput
	var a alias
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return nil
	}
	*d = DebtorInput(a)
	d.object = true
	return nil
}

// IsObject reports whether the payload carried a structured debtor object
func (d *DebtorInput) IsObject() bool {
	return d != nil && d.object
}

// NormalizedAddress returns the debtor address with empty-string defaults
// for absent fields
func (d *DebtorInput) NormalizedAddress() Address {
	if d == nil || d.Address == nil {
		return Address{}
	}
	return *d.Address
}

// AmountValue coerces the inbound amount, which may arrive as a JSON
// number or a numeric string, into a finite float64. The second return
// value is false when the amount is missing or not numeric.
func AmountValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
