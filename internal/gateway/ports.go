package gateway

import (
	"context"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/assets"
	"github.com/odyssey-erp/procuredesk/internal/procure/chains"
	"github.com/odyssey-erp/procuredesk/internal/procure/invoices"
	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
	"github.com/odyssey-erp/procuredesk/internal/procure/payments"
	"github.com/odyssey-erp/procuredesk/internal/workflow"
)

// InvoiceService is the invoice surface the gateway uses.
type InvoiceService interface {
	List(ctx context.Context, filter invoices.Filter) ([]invoices.Invoice, error)
	Transition(ctx context.Context, input invoices.TransitionInput) (webhook.Result, error)
}

// AssetService is the asset surface the gateway uses.
type AssetService interface {
	ListPending(ctx context.Context, filter assets.Filter) ([]assets.Asset, error)
	PutToUse(ctx context.Context, input assets.PutToUseInput) (assets.PutToUseResult, error)
}

// PaymentService is the payment surface the gateway uses.
type PaymentService interface {
	Record(ctx context.Context, data payments.RecordPaymentData) (payments.RecordResult, error)
}

// ChainService is the chain surface the gateway uses.
type ChainService interface {
	Get(ctx context.Context, chainUUID string) (chains.DocumentChain, error)
	Timeline(ctx context.Context, chainUUID string) (chains.TimelineResponse, error)
	Progress(ctx context.Context, chainUUID string, set workflow.StageSet) ([]workflow.Stage, error)
}

// Services bundles the backends behind the gateway.
type Services struct {
	Invoices InvoiceService
	Assets   AssetService
	Payments PaymentService
	Chains   ChainService
	Lookups  lookups.Source
}

var (
	_ InvoiceService = (*invoices.Client)(nil)
	_ AssetService   = (*assets.Client)(nil)
	_ PaymentService = (*payments.Client)(nil)
	_ ChainService   = (*chains.Client)(nil)
)
