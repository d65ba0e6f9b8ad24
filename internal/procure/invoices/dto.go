package invoices

import (
	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

// Filter narrows the invoice list. Zero values are not sent.
type Filter struct {
	Status     Status
	Department string
	VendorID   int64
	Branch     string
}

func (f Filter) query() webhook.Query {
	return webhook.Query{
		"status":     string(f.Status),
		"department": f.Department,
		"vendorId":   webhook.Int(f.VendorID),
		"branch":     f.Branch,
	}
}

// UploadInput carries an invoice document for extraction.
type UploadInput struct {
	File       webhook.File
	UploadedBy string `validate:"required"`
	Department string
	Branch     string
}

// UploadResult answers an upload.
type UploadResult struct {
	webhook.Result
	InvoiceUUID string `json:"invoiceUuid,omitempty"`
}

// UpdateInput corrects extracted invoice fields. Empty fields are left as is.
type UpdateInput struct {
	InvoiceUUID   string         `json:"invoiceUuid" validate:"required,uuid"`
	InvoiceNumber string         `json:"invoiceNumber,omitempty"`
	InvoiceDate   *shared.Date   `json:"invoiceDate,omitempty"`
	DueDate       *shared.Date   `json:"dueDate,omitempty"`
	Currency      string         `json:"currency,omitempty" validate:"omitempty,len=3"`
	TotalAmount   *shared.Amount `json:"totalAmount,omitempty"`
	VendorID      int64          `json:"vendorId,omitempty"`
	UserID        string         `json:"userId" validate:"required"`
}

// TransitionInput moves an invoice to another status.
type TransitionInput struct {
	InvoiceUUID string `json:"invoiceUuid" validate:"required,uuid"`
	Status      Status `json:"status" validate:"required,oneof=PENDING_REVIEW PENDING_APPROVAL APPROVED REJECTED CORRECTION_NEEDED PROCESSED"`
	Comment     string `json:"comment,omitempty"`
	UserID      string `json:"userId" validate:"required"`
}
