// Package invoices wraps the invoice endpoints of the invoice webhook group.
package invoices

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathList       = "/invoice-api/invoices"
	pathInvoice    = "/invoice-api/invoice"
	pathUpload     = "/invoice-api/upload"
	pathTransition = "/invoice-api/invoice/status"
)

// Client exposes invoice operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs an invoice client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// List returns invoices matching filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.caller.Get(ctx, "invoices.list", pathList, filter.query(), &invoices); err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []Invoice{}
	}
	return invoices, nil
}

// Get fetches one invoice by its external identifier.
func (c *Client) Get(ctx context.Context, invoiceUUID string) (Invoice, error) {
	invoiceUUID = strings.TrimSpace(invoiceUUID)
	if err := shared.RequireUUID("uuid", invoiceUUID); err != nil {
		return Invoice{}, err
	}
	var invoice Invoice
	if err := c.caller.Get(ctx, "invoices.get", pathInvoice, webhook.Query{"uuid": invoiceUUID}, &invoice); err != nil {
		return Invoice{}, err
	}
	return invoice, nil
}

// Upload sends an invoice document for extraction. A failed upload is
// returned as is and never retried.
func (c *Client) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if err := shared.Validate(input); err != nil {
		return UploadResult{}, err
	}
	fields := webhook.Query{
		"uploadedBy": input.UploadedBy,
		"department": input.Department,
		"branch":     input.Branch,
	}
	var result UploadResult
	if err := c.caller.Upload(ctx, "invoices.upload", pathUpload, input.File, fields, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// Update corrects invoice fields.
func (c *Client) Update(ctx context.Context, input UpdateInput) (webhook.Result, error) {
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	if err := shared.Validate(input); err != nil {
		return webhook.Result{}, err
	}
	var result webhook.Result
	if err := c.caller.Put(ctx, "invoices.update", pathInvoice, input, &result); err != nil {
		return webhook.Result{}, err
	}
	return result, nil
}

// Transition requests a status change.
func (c *Client) Transition(ctx context.Context, input TransitionInput) (webhook.Result, error) {
	if err := shared.Validate(input); err != nil {
		return webhook.Result{}, err
	}
	var result webhook.Result
	if err := c.caller.Post(ctx, "invoices.transition", pathTransition, input, &result); err != nil {
		return webhook.Result{}, err
	}
	return result, nil
}
