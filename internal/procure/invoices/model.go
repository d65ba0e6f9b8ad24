package invoices

import "github.com/odyssey-erp/procuredesk/internal/procure/shared"

// Status is the invoice review state.
type Status string

const (
	StatusPendingReview    Status = "PENDING_REVIEW"
	StatusPendingApproval  Status = "PENDING_APPROVAL"
	StatusApproved         Status = "APPROVED"
	StatusRejected         Status = "REJECTED"
	StatusCorrectionNeeded Status = "CORRECTION_NEEDED"
	StatusProcessed        Status = "PROCESSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingReview, StatusPendingApproval, StatusApproved, StatusRejected, StatusCorrectionNeeded, StatusProcessed:
		return true
	}
	return false
}

// Invoice is a vendor invoice extracted by the backend.
type Invoice struct {
	InvoiceID     int64         `json:"invoiceId"`
	InvoiceUUID   string        `json:"invoiceUuid"`
	InvoiceNumber string        `json:"invoiceNumber"`
	InvoiceDate   shared.Date   `json:"invoiceDate"`
	DueDate       shared.Date   `json:"dueDate"`
	VendorID      int64         `json:"vendorId"`
	VendorName    string        `json:"vendorName,omitempty"`
	Department    string        `json:"department,omitempty"`
	Branch        string        `json:"branch,omitempty"`
	Currency      string        `json:"currency"`
	TotalAmount   shared.Amount `json:"totalAmount"`
	TaxAmount     shared.Amount `json:"taxAmount"`
	Status        Status        `json:"status"`
	LPOUUID       string        `json:"lpoUuid,omitempty"`
	ChainUUID     string        `json:"chainUuid,omitempty"`
	FileURL       string        `json:"fileUrl,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	CreatedAt     string        `json:"createdAt,omitempty"`
}

// Total returns the invoice total as money.
func (i Invoice) Total() shared.Money {
	return shared.Money{Currency: i.Currency, Amount: i.TotalAmount}
}
