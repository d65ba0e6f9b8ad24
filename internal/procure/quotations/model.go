package quotations

import "github.com/odyssey-erp/procuredesk/internal/procure/shared"

// Status is the selection state of a quotation.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSelected Status = "SELECTED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known quotation status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSelected, StatusRejected:
		return true
	}
	return false
}

// LPOStatus is the approval state of a local purchase order.
type LPOStatus string

const (
	LPOPendingApproval LPOStatus = "PENDING_APPROVAL"
	LPOApproved        LPOStatus = "APPROVED"
	LPORejected        LPOStatus = "REJECTED"
)

// Valid reports whether s is a known LPO status.
func (s LPOStatus) Valid() bool {
	switch s {
	case LPOPendingApproval, LPOApproved, LPORejected:
		return true
	}
	return false
}

// Quotation is a vendor offer collected for a purchase request.
type Quotation struct {
	QuotationUUID   string        `json:"quotationUuid"`
	QuotationNumber string        `json:"quotationNumber,omitempty"`
	Title           string        `json:"title,omitempty"`
	VendorID        int64         `json:"vendorId"`
	VendorName      string        `json:"vendorName,omitempty"`
	Department      string        `json:"department,omitempty"`
	Currency        string        `json:"currency"`
	TotalAmount     shared.Amount `json:"totalAmount"`
	ValidUntil      shared.Date   `json:"validUntil"`
	Status          Status        `json:"status"`
	ChainUUID       string        `json:"chainUuid,omitempty"`
	FileURL         string        `json:"fileUrl,omitempty"`
	CreatedAt       string        `json:"createdAt,omitempty"`
}

// LPO is a local purchase order raised from a selected quotation.
type LPO struct {
	LPOUUID       string        `json:"lpoUuid"`
	LPONumber     string        `json:"lpoNumber"`
	QuotationUUID string        `json:"quotationUuid"`
	VendorID      int64         `json:"vendorId"`
	VendorName    string        `json:"vendorName,omitempty"`
	Department    string        `json:"department,omitempty"`
	Currency      string        `json:"currency"`
	TotalAmount   shared.Amount `json:"totalAmount"`
	Status        LPOStatus     `json:"status"`
	ApprovedBy    string        `json:"approvedBy,omitempty"`
	ApprovedAt    string        `json:"approvedAt,omitempty"`
	ChainUUID     string        `json:"chainUuid,omitempty"`
}
