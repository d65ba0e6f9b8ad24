package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/assets"
	"github.com/odyssey-erp/procuredesk/internal/procure/chains"
	"github.com/odyssey-erp/procuredesk/internal/procure/deliveryorders"
	"github.com/odyssey-erp/procuredesk/internal/procure/invoices"
	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
	"github.com/odyssey-erp/procuredesk/internal/procure/payments"
	"github.com/odyssey-erp/procuredesk/internal/procure/proforma"
	"github.com/odyssey-erp/procuredesk/internal/procure/quotations"
	"github.com/odyssey-erp/procuredesk/internal/procure/vendors"
)

// Clients holds one resource client per webhook operation family.
type Clients struct {
	Vendors        *vendors.Client
	Invoices       *invoices.Client
	Quotations     *quotations.Client
	DeliveryOrders *deliveryorders.Client
	Payments       *payments.Client
	Proforma       *proforma.Client
	Assets         *assets.Client
	Chains         *chains.Client
	Lookups        *lookups.Client
}

// NewClients builds a webhook caller per endpoint group and the resource
// clients on top of them. All callers share one http.Client.
func NewClients(cfg *Config, logger *slog.Logger, observer webhook.Observer) (*Clients, error) {
	httpClient := &http.Client{}
	callers := make(map[string]*webhook.Client)
	for group, baseURL := range cfg.Endpoints.byGroup() {
		caller, err := webhook.New(webhook.Options{
			BaseURL:    baseURL,
			Group:      group,
			Timeout:    cfg.WebhookTimeout,
			HTTPClient: httpClient,
			Logger:     logger,
			Observer:   observer,
		})
		if err != nil {
			return nil, fmt.Errorf("app: %s client: %w", group, err)
		}
		callers[group] = caller
	}
	return &Clients{
		Vendors:        vendors.NewClient(callers["invoice"]),
		Invoices:       invoices.NewClient(callers["invoice"]),
		Quotations:     quotations.NewClient(callers["quotation"]),
		DeliveryOrders: deliveryorders.NewClient(callers["do"]),
		Payments:       payments.NewClient(callers["payment"]),
		Proforma:       proforma.NewClient(callers["proforma"]),
		Assets:         assets.NewClient(callers["asset"]),
		Chains:         chains.NewClient(callers["chain"]),
		Lookups:        lookups.NewClient(callers["lookup"]),
	}, nil
}
