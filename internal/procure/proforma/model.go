package proforma

import "github.com/odyssey-erp/procuredesk/internal/procure/shared"

// Status is the link state of a proforma invoice.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusLinked    Status = "LINKED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusLinked, StatusCancelled:
		return true
	}
	return false
}

// Proforma is an advance invoice later linked to the final invoice.
type Proforma struct {
	ProformaUUID   string        `json:"proformaUuid"`
	ProformaNumber string        `json:"proformaNumber,omitempty"`
	LPOUUID        string        `json:"lpoUuid,omitempty"`
	InvoiceUUID    string        `json:"invoiceUuid,omitempty"`
	VendorID       int64         `json:"vendorId"`
	VendorName     string        `json:"vendorName,omitempty"`
	Currency       string        `json:"currency"`
	Amount         shared.Amount `json:"amount"`
	ProformaDate   shared.Date   `json:"proformaDate"`
	Status         Status        `json:"status"`
	ChainUUID      string        `json:"chainUuid,omitempty"`
}
