// Package payments wraps the payment and post-dated cheque endpoints.
package payments

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathList      = "/payment-api/payments"
	pathRecord    = "/payment-api/payment/record"
	pathPDCs      = "/payment-api/pdc"
	pathPDCStatus = "/payment-api/pdc/status"
)

// Client exposes payment operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs a payment client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// List returns payments matching filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]Payment, error) {
	var payments []Payment
	if err := c.caller.Get(ctx, "payments.list", pathList, filter.query(), &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []Payment{}
	}
	return payments, nil
}

// Record submits a payment. The amount is rounded to the currency's minor
// unit before it is validated and sent, so a sub-unit amount is rejected.
func (c *Client) Record(ctx context.Context, data RecordPaymentData) (RecordResult, error) {
	data.Currency = strings.ToUpper(strings.TrimSpace(data.Currency))
	if data.Currency == "" {
		data.Currency = shared.DefaultCurrency
	}
	data.Reference = strings.TrimSpace(data.Reference)
	data.ChequeNumber = strings.TrimSpace(data.ChequeNumber)
	data.Amount = shared.Money{Currency: data.Currency, Amount: data.Amount}.Round().Amount
	if err := shared.Validate(data); err != nil {
		return RecordResult{}, err
	}

	var result RecordResult
	if err := c.caller.Post(ctx, "payments.record", pathRecord, data, &result); err != nil {
		return RecordResult{}, err
	}
	return result, nil
}

// ListPDCs returns post-dated cheques matching filter.
func (c *Client) ListPDCs(ctx context.Context, filter PDCFilter) ([]PDC, error) {
	var cheques []PDC
	if err := c.caller.Get(ctx, "payments.list_pdcs", pathPDCs, filter.query(), &cheques); err != nil {
		return nil, err
	}
	if cheques == nil {
		cheques = []PDC{}
	}
	return cheques, nil
}

// UpdatePDC records a cheque status change.
func (c *Client) UpdatePDC(ctx context.Context, update PDCUpdate) (webhook.Result, error) {
	if err := shared.Validate(update); err != nil {
		return webhook.Result{}, err
	}
	var result webhook.Result
	if err := c.caller.Post(ctx, "payments.update_pdc", pathPDCStatus, update, &result); err != nil {
		return webhook.Result{}, err
	}
	return result, nil
}
