package deliveryorders

import "github.com/odyssey-erp/procuredesk/internal/procure/shared"

// Status is the receipt state of a delivery order.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPartial  Status = "PARTIAL"
	StatusReceived Status = "RECEIVED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPartial, StatusReceived:
		return true
	}
	return false
}

// DeliveryOrder is a vendor delivery note raised against an LPO.
type DeliveryOrder struct {
	DOUUID       string      `json:"doUuid"`
	DONumber     string      `json:"doNumber,omitempty"`
	LPOUUID      string      `json:"lpoUuid"`
	LPONumber    string      `json:"lpoNumber,omitempty"`
	VendorName   string      `json:"vendorName,omitempty"`
	Status       Status      `json:"status"`
	DeliveryDate shared.Date `json:"deliveryDate"`
	ReceivedDate shared.Date `json:"receivedDate"`
	ReceivedBy   string      `json:"receivedBy,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	ChainUUID    string      `json:"chainUuid,omitempty"`
	FileURL      string      `json:"fileUrl,omitempty"`
}
