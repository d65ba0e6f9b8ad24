package assets

import "github.com/odyssey-erp/procuredesk/internal/procure/shared"

// Status is the lifecycle state of a fixed asset.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusInUse    Status = "IN_USE"
	StatusDisposed Status = "DISPOSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInUse, StatusDisposed:
		return true
	}
	return false
}

// Asset is a capitalised item from an approved invoice.
type Asset struct {
	AssetUUID    string        `json:"assetUuid"`
	AssetTag     string        `json:"assetTag,omitempty"`
	Description  string        `json:"description"`
	Category     string        `json:"category,omitempty"`
	Department   string        `json:"department,omitempty"`
	Branch       string        `json:"branch,omitempty"`
	InvoiceUUID  string        `json:"invoiceUuid,omitempty"`
	Currency     string        `json:"currency"`
	Cost         shared.Amount `json:"cost"`
	Status       Status        `json:"status"`
	PutToUseDate shared.Date   `json:"putToUseDate"`
}
