package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/assets"
	"github.com/odyssey-erp/procuredesk/internal/procure/chains"
	"github.com/odyssey-erp/procuredesk/internal/procure/invoices"
	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
	"github.com/odyssey-erp/procuredesk/internal/procure/payments"
	"github.com/odyssey-erp/procuredesk/internal/session"
	"github.com/odyssey-erp/procuredesk/internal/workflow"
)

const chainUUID = "7c6b5a49-3827-4161-9f5e-4d3c2b1a0f9e"

type stubInvoices struct {
	filter     invoices.Filter
	transition invoices.TransitionInput
	result     webhook.Result
	err        error
}

func (s *stubInvoices) List(_ context.Context, filter invoices.Filter) ([]invoices.Invoice, error) {
	s.filter = filter
	return []invoices.Invoice{{InvoiceNumber: "INV-1"}}, s.err
}

func (s *stubInvoices) Transition(_ context.Context, input invoices.TransitionInput) (webhook.Result, error) {
	s.transition = input
	return s.result, s.err
}

type stubAssets struct {
	input assets.PutToUseInput
}

func (s *stubAssets) ListPending(context.Context, assets.Filter) ([]assets.Asset, error) {
	return []assets.Asset{}, nil
}

func (s *stubAssets) PutToUse(_ context.Context, input assets.PutToUseInput) (assets.PutToUseResult, error) {
	s.input = input
	return assets.PutToUseResult{Result: webhook.Result{Success: true}, AssetTag: "AST-1"}, nil
}

type stubPayments struct {
	data payments.RecordPaymentData
}

func (s *stubPayments) Record(_ context.Context, data payments.RecordPaymentData) (payments.RecordResult, error) {
	s.data = data
	return payments.RecordResult{Result: webhook.Result{Success: false, Error: "amount exceeds balance"}}, nil
}

type stubChains struct {
	snapshot    workflow.Snapshot
	timelineErr error
	calls       atomic.Int32
}

func (s *stubChains) Get(context.Context, string) (chains.DocumentChain, error) {
	s.calls.Add(1)
	return chains.DocumentChain{ChainUUID: chainUUID, LPONumber: "LPO-9"}, nil
}

func (s *stubChains) Timeline(context.Context, string) (chains.TimelineResponse, error) {
	s.calls.Add(1)
	return chains.TimelineResponse{Result: webhook.Result{Success: true}, Timeline: []chains.TimelineEvent{{Action: "UPLOADED"}}}, s.timelineErr
}

func (s *stubChains) Progress(_ context.Context, _ string, set workflow.StageSet) ([]workflow.Stage, error) {
	s.calls.Add(1)
	return workflow.Derive(s.snapshot, set), nil
}

type stubLookups struct {
	role string
}

func (s *stubLookups) Departments(context.Context) ([]lookups.Option, error) {
	return []lookups.Option{{Code: "IT", Name: "IT"}}, nil
}
func (s *stubLookups) Branches(context.Context) ([]lookups.Option, error)   { return nil, nil }
func (s *stubLookups) Categories(context.Context) ([]lookups.Option, error) { return nil, nil }
func (s *stubLookups) Users(_ context.Context, role string) ([]lookups.User, error) {
	s.role = role
	return []lookups.User{}, nil
}

type fixture struct {
	invoices *stubInvoices
	assets   *stubAssets
	payments *stubPayments
	chains   *stubChains
	lookups  *stubLookups
	manager  *session.Manager
	router   chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		invoices: &stubInvoices{result: webhook.Result{Success: true}},
		assets:   &stubAssets{},
		payments: &stubPayments{},
		chains:   &stubChains{},
		lookups:  &stubLookups{},
		manager:  session.NewManager(session.NewMemoryStore(), time.Hour),
	}
	handler := NewHandler(Services{
		Invoices: f.invoices,
		Assets:   f.assets,
		Payments: f.payments,
		Chains:   f.chains,
		Lookups:  f.lookups,
	}, f.manager, nil, false)
	f.router = chi.NewRouter()
	f.router.Use(f.loadSession)
	f.router.Route("/api", handler.MountRoutes)
	return f
}

func (f *fixture) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(session.CookieName); err == nil {
			id = cookie.Value
		}
		sess, err := f.manager.Load(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.ContextWithSession(r.Context(), sess)))
	})
}

func (f *fixture) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	rr := f.do(t, http.MethodPut, "/api/session", `{"userId":"u-7","name":"Aisha"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/session", "")
	require.JSONEq(t, `{"signedIn":false}`, rr.Body.String())

	cookie := f.signIn(t)
	rr = f.do(t, http.MethodGet, "/api/session", "", cookie)
	require.JSONEq(t, `{"signedIn":true,"user":{"userId":"u-7","name":"Aisha"}}`, rr.Body.String())

	rr = f.do(t, http.MethodDelete, "/api/session", "", cookie)
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr = f.do(t, http.MethodGet, "/api/session", "", cookie)
	require.JSONEq(t, `{"signedIn":false}`, rr.Body.String())
}

func TestSignInIgnoresPlantedCookie(t *testing.T) {
	f := newFixture(t)

	planted := &http.Cookie{Name: session.CookieName, Value: "planted-id"}
	rr := f.do(t, http.MethodPut, "/api/session", `{"userId":"u-7","name":"Aisha"}`, planted)
	require.Equal(t, http.StatusOK, rr.Code)

	var issued *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			issued = c
		}
	}
	require.NotNil(t, issued)
	require.NotEqual(t, planted.Value, issued.Value)

	rr = f.do(t, http.MethodGet, "/api/session", "", planted)
	require.JSONEq(t, `{"signedIn":false}`, rr.Body.String())
	rr = f.do(t, http.MethodGet, "/api/session", "", issued)
	require.JSONEq(t, `{"signedIn":true,"user":{"userId":"u-7","name":"Aisha"}}`, rr.Body.String())
}

func TestSignInRejectsIncompleteUser(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPut, "/api/session", `{"userId":"u-7"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListInvoicesPassesFilters(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/invoices?status=APPROVED&vendorId=4&branch=MCT", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, invoices.Filter{Status: invoices.StatusApproved, VendorID: 4, Branch: "MCT"}, f.invoices.filter)

	rr = f.do(t, http.MethodGet, "/api/invoices?status=approved", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr = f.do(t, http.MethodGet, "/api/invoices?vendorId=abc", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpstreamErrorsAreMapped(t *testing.T) {
	f := newFixture(t)

	f.invoices.err = &webhook.HTTPError{StatusCode: 500, Status: "Internal Server Error"}
	rr := f.do(t, http.MethodGet, "/api/invoices", "")
	require.Equal(t, http.StatusBadGateway, rr.Code)

	f.invoices.err = &webhook.TimeoutError{Operation: "invoices.list", After: 5 * time.Second}
	rr = f.do(t, http.MethodGet, "/api/invoices", "")
	require.Equal(t, http.StatusGatewayTimeout, rr.Code)
}

func TestTransitionNeedsSignedInUser(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/invoices/abc/status", `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	cookie := f.signIn(t)
	rr = f.do(t, http.MethodPost, "/api/invoices/abc/status", `{"status":"APPROVED","comment":" fine "}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, invoices.TransitionInput{InvoiceUUID: "abc", Status: invoices.StatusApproved, Comment: "fine", UserID: "u-7"}, f.invoices.transition)
}

func TestApplicationFailurePassesThrough(t *testing.T) {
	f := newFixture(t)
	cookie := f.signIn(t)

	rr := f.do(t, http.MethodPost, "/api/payments", `{"invoiceUuid":"x","amount":"10","currency":"OMR","method":"CASH","paymentDate":"2024-07-01","userId":"spoofed"}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"success":false,"error":"amount exceeds balance"}`, rr.Body.String())
	require.Equal(t, "u-7", f.payments.data.UserID)
}

func TestPutAssetToUse(t *testing.T) {
	f := newFixture(t)
	cookie := f.signIn(t)

	rr := f.do(t, http.MethodPost, "/api/assets/a-1/put-to-use", `{"putToUseDate":"2024-05-20"}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "a-1", f.assets.input.AssetUUID)
	require.Equal(t, "2024-05-20", f.assets.input.PutToUseDate.String())

	rr = f.do(t, http.MethodPost, "/api/assets/a-1/put-to-use", `{"putToUseDate":"20/05/2024"}`, cookie)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChainOverviewCombinesCalls(t *testing.T) {
	f := newFixture(t)
	f.chains.snapshot = workflow.Snapshot{Quotations: 1, LPOs: 1}

	rr := f.do(t, http.MethodGet, "/api/chains/"+chainUUID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int32(3), f.chains.calls.Load())

	var body struct {
		Chain        chains.DocumentChain `json:"chain"`
		Stages       []workflow.Stage     `json:"stages"`
		CurrentStage workflow.Stage       `json:"currentStage"`
		Percent      int                  `json:"percent"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "LPO-9", body.Chain.LPONumber)
	require.Len(t, body.Stages, 5)
	require.Equal(t, workflow.StageLPO, body.CurrentStage.Key)
	require.Equal(t, 20, body.Percent)
}

func TestChainOverviewFailsWhenAnyCallFails(t *testing.T) {
	f := newFixture(t)
	f.chains.timelineErr = errors.Join(webhook.ErrTransport, errors.New("reset"))

	rr := f.do(t, http.MethodGet, "/api/chains/"+chainUUID, "")
	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestChainProgressVariants(t *testing.T) {
	f := newFixture(t)
	f.chains.snapshot = workflow.Snapshot{Quotations: 1, LPOs: 1, LPOApproved: true, DeliveryOrders: 1, DOReceived: true, Invoices: 1, InvoiceApproved: true, Payments: 1}

	var body progressResponse
	rr := f.do(t, http.MethodGet, "/api/chains/"+chainUUID+"/progress?variant=pipeline", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "pipeline", body.Variant)
	require.Equal(t, "Uploaded", body.Stages[4].Label)

	rr = f.do(t, http.MethodGet, "/api/chains/"+chainUUID+"/progress", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "dashboard", body.Variant)
	require.Equal(t, "Partial", body.Stages[4].Label)

	rr = f.do(t, http.MethodGet, "/api/chains/"+chainUUID+"/progress?variant=kanban", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLookups(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/lookups/departments", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{"code":"IT","name":"IT"}]`, rr.Body.String())

	rr = f.do(t, http.MethodGet, "/api/lookups/users?role=approver", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "approver", f.lookups.role)

	rr = f.do(t, http.MethodGet, "/api/lookups/vendors", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
