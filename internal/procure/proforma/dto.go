package proforma

import "github.com/odyssey-erp/procuredesk/internal/platform/webhook"

// Filter narrows the proforma list.
type Filter struct {
	Status   Status
	VendorID int64
}

func (f Filter) query() webhook.Query {
	return webhook.Query{
		"status":   string(f.Status),
		"vendorId": webhook.Int(f.VendorID),
	}
}

// UploadInput carries a proforma document, optionally against an LPO.
type UploadInput struct {
	File       webhook.File
	LPOUUID    string `validate:"omitempty,uuid"`
	UploadedBy string `validate:"required"`
}

// UploadResult answers an upload.
type UploadResult struct {
	webhook.Result
	ProformaUUID string `json:"proformaUuid,omitempty"`
}

// LinkInput attaches a proforma to its final invoice.
type LinkInput struct {
	ProformaUUID string `json:"proformaUuid" validate:"required,uuid"`
	InvoiceUUID  string `json:"invoiceUuid" validate:"required,uuid"`
	UserID       string `json:"userId" validate:"required"`
}
