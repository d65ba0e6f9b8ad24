package payments

import (
	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

// Filter narrows the payment list.
type Filter struct {
	Status      Status
	InvoiceUUID string
	Method      Method
}

func (f Filter) query() webhook.Query {
	return webhook.Query{
		"status":      string(f.Status),
		"invoiceUuid": f.InvoiceUUID,
		"method":      string(f.Method),
	}
}

// PDCFilter narrows the cheque list.
type PDCFilter struct {
	Status PDCStatus
}

func (f PDCFilter) query() webhook.Query {
	return webhook.Query{"status": string(f.Status)}
}

// RecordPaymentData records a payment. Cheque date is required for post-dated cheques.
type RecordPaymentData struct {
	InvoiceUUID  string        `json:"invoiceUuid" validate:"required,uuid"`
	Amount       shared.Amount `json:"amount" validate:"gt=0"`
	Currency     string        `json:"currency" validate:"required,len=3"`
	Method       Method        `json:"method" validate:"required,oneof=BANK_TRANSFER CHEQUE PDC CASH"`
	PaymentDate  shared.Date   `json:"paymentDate" validate:"required"`
	Reference    string        `json:"reference,omitempty" validate:"max=100"`
	ChequeNumber string        `json:"chequeNumber,omitempty" validate:"required_if=Method PDC,required_if=Method CHEQUE"`
	ChequeDate   shared.Date   `json:"chequeDate,omitzero" validate:"required_if=Method PDC"`
	UserID       string        `json:"userId" validate:"required"`
}

// RecordResult answers a recorded payment.
type RecordResult struct {
	webhook.Result
	PaymentID int64 `json:"paymentId,omitempty"`
}

// PDCUpdate moves a cheque to another status.
type PDCUpdate struct {
	PaymentID int64       `json:"paymentId" validate:"required,gt=0"`
	Status    PDCStatus   `json:"status" validate:"required,oneof=PENDING DEPOSITED CLEARED BOUNCED"`
	Date      shared.Date `json:"date,omitzero"`
	UserID    string      `json:"userId" validate:"required"`
}
