package quotations

import "github.com/odyssey-erp/procuredesk/internal/platform/webhook"

// Filter narrows the quotation list.
type Filter struct {
	Status     Status
	VendorID   int64
	Department string
}

func (f Filter) query() webhook.Query {
	return webhook.Query{
		"status":     string(f.Status),
		"vendorId":   webhook.Int(f.VendorID),
		"department": f.Department,
	}
}

// LPOFilter narrows the LPO list.
type LPOFilter struct {
	Status     LPOStatus
	Department string
}

func (f LPOFilter) query() webhook.Query {
	return webhook.Query{
		"status":     string(f.Status),
		"department": f.Department,
	}
}

// UploadInput carries a quotation document.
type UploadInput struct {
	File        webhook.File
	Department  string
	RequestedBy string `validate:"required"`
	Title       string `validate:"max=200"`
}

// UploadResult answers an upload.
type UploadResult struct {
	webhook.Result
	QuotationUUID string `json:"quotationUuid,omitempty"`
}

// SelectInput picks the winning quotation, which raises an LPO.
type SelectInput struct {
	QuotationUUID string `json:"quotationUuid" validate:"required,uuid"`
	UserID        string `json:"userId" validate:"required"`
	Justification string `json:"justification,omitempty" validate:"max=1000"`
}

// SelectResult carries the LPO raised by a selection.
type SelectResult struct {
	webhook.Result
	LPOUUID   string `json:"lpoUuid,omitempty"`
	LPONumber string `json:"lpoNumber,omitempty"`
}

// LPODecision approves or rejects an LPO.
type LPODecision struct {
	LPOUUID string `json:"lpoUuid" validate:"required,uuid"`
	Approve bool   `json:"approve"`
	UserID  string `json:"userId" validate:"required"`
	Comment string `json:"comment,omitempty"`
}
