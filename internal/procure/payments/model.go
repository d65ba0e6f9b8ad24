package payments

import "github.com/odyssey-erp/procuredesk/internal/procure/shared"

// Status is the settlement state of an invoice's payments.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPartial Status = "PARTIAL"
	StatusPaid    Status = "PAID"
)

// Valid reports whether s is a known payment status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// Method is how a payment was made.
type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCheque       Method = "CHEQUE"
	MethodPDC          Method = "PDC"
	MethodCash         Method = "CASH"
)

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodCheque, MethodPDC, MethodCash:
		return true
	}
	return false
}

// PDCStatus tracks a post-dated cheque.
type PDCStatus string

const (
	PDCPending   PDCStatus = "PENDING"
	PDCDeposited PDCStatus = "DEPOSITED"
	PDCCleared   PDCStatus = "CLEARED"
	PDCBounced   PDCStatus = "BOUNCED"
)

// Valid reports whether s is a known cheque status.
func (s PDCStatus) Valid() bool {
	switch s {
	case PDCPending, PDCDeposited, PDCCleared, PDCBounced:
		return true
	}
	return false
}

// Payment is one recorded payment against an invoice.
type Payment struct {
	PaymentID     int64         `json:"paymentId"`
	InvoiceUUID   string        `json:"invoiceUuid"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	VendorName    string        `json:"vendorName,omitempty"`
	Amount        shared.Amount `json:"amount"`
	Currency      string        `json:"currency"`
	Method        Method        `json:"method"`
	PaymentDate   shared.Date   `json:"paymentDate"`
	Reference     string        `json:"reference,omitempty"`
	Status        Status        `json:"status"`
	ChainUUID     string        `json:"chainUuid,omitempty"`
	CreatedBy     string        `json:"createdBy,omitempty"`
}

// Value returns the payment amount as money.
func (p Payment) Value() shared.Money {
	return shared.Money{Currency: p.Currency, Amount: p.Amount}
}

// PDC is a post-dated cheque awaiting deposit or clearance.
type PDC struct {
	PaymentID    int64         `json:"paymentId"`
	InvoiceUUID  string        `json:"invoiceUuid"`
	VendorName   string        `json:"vendorName,omitempty"`
	ChequeNumber string        `json:"chequeNumber"`
	ChequeDate   shared.Date   `json:"chequeDate"`
	Amount       shared.Amount `json:"amount"`
	Currency     string        `json:"currency"`
	Status       PDCStatus     `json:"status"`
	StatusDate   shared.Date   `json:"statusDate"`
}

// Due reports whether the cheque date has been reached on day.
func (p PDC) Due(day shared.Date) bool {
	return p.Status == PDCPending && !p.ChequeDate.IsZero() && !p.ChequeDate.After(day.Time)
}
