// Package quotations wraps the quotation and LPO endpoints.
package quotations

import (
	"context"
	"strings"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const (
	pathList     = "/quotation-api/quotations"
	pathGet      = "/quotation-api/quotation"
	pathUpload   = "/quotation-api/upload"
	pathSelect   = "/quotation-api/select"
	pathLPOs     = "/quotation-api/lpos"
	pathDecision = "/quotation-api/lpo/decision"
)

// Client exposes quotation operations.
type Client struct {
	caller webhook.Caller
}

// NewClient constructs a quotation client.
func NewClient(caller webhook.Caller) *Client {
	return &Client{caller: caller}
}

// List returns quotations matching filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]Quotation, error) {
	var quotations []Quotation
	if err := c.caller.Get(ctx, "quotations.list", pathList, filter.query(), &quotations); err != nil {
		return nil, err
	}
	if quotations == nil {
		quotations = []Quotation{}
	}
	return quotations, nil
}

// Get fetches one quotation.
func (c *Client) Get(ctx context.Context, quotationUUID string) (Quotation, error) {
	quotationUUID = strings.TrimSpace(quotationUUID)
	if err := shared.RequireUUID("uuid", quotationUUID); err != nil {
		return Quotation{}, err
	}
	var quotation Quotation
	if err := c.caller.Get(ctx, "quotations.get", pathGet, webhook.Query{"uuid": quotationUUID}, &quotation); err != nil {
		return Quotation{}, err
	}
	return quotation, nil
}

// Upload sends a quotation document. It is attempted once.
func (c *Client) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := shared.Validate(input); err != nil {
		return UploadResult{}, err
	}
	fields := webhook.Query{
		"department":  input.Department,
		"requestedBy": input.RequestedBy,
		"title":       input.Title,
	}
	var result UploadResult
	if err := c.caller.Upload(ctx, "quotations.upload", pathUpload, input.File, fields, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// Select marks a quotation as the winner.
func (c *Client) Select(ctx context.Context, input SelectInput) (SelectResult, error) {
	if err := shared.Validate(input); err != nil {
		return SelectResult{}, err
	}
	var result SelectResult
	if err := c.caller.Post(ctx, "quotations.select", pathSelect, input, &result); err != nil {
		return SelectResult{}, err
	}
	return result, nil
}

// ListLPOs returns purchase orders matching filter.
func (c *Client) ListLPOs(ctx context.Context, filter LPOFilter) ([]LPO, error) {
	var lpos []LPO
	if err := c.caller.Get(ctx, "quotations.list_lpos", pathLPOs, filter.query(), &lpos); err != nil {
		return nil, err
	}
	if lpos == nil {
		lpos = []LPO{}
	}
	return lpos, nil
}

// ApproveLPO records an approval decision.
func (c *Client) ApproveLPO(ctx context.Context, decision LPODecision) (webhook.Result, error) {
	decision.Comment = strings.TrimSpace(decision.Comment)
	if err := shared.Validate(decision); err != nil {
		return webhook.Result{}, err
	}
	var result webhook.Result
	if err := c.caller.Post(ctx, "quotations.lpo_decision", pathDecision, decision, &result); err != nil {
		return webhook.Result{}, err
	}
	return result, nil
}
