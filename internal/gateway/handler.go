// Package gateway exposes the procurement clients as a JSON API for the view
// layer. Application failures reported by the backend are passed through
// unchanged with status 200.
package gateway

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/procuredesk/internal/platform/httpx"
	"github.com/odyssey-erp/procuredesk/internal/procure/assets"
	"github.com/odyssey-erp/procuredesk/internal/procure/chains"
	"github.com/odyssey-erp/procuredesk/internal/procure/invoices"
	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
	"github.com/odyssey-erp/procuredesk/internal/procure/payments"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
	"github.com/odyssey-erp/procuredesk/internal/session"
	"github.com/odyssey-erp/procuredesk/internal/workflow"
)

// Handler serves the /api routes.
type Handler struct {
	services Services
	sessions *session.Manager
	logger   *slog.Logger
	secure   bool
}

// NewHandler constructs a Handler. secure marks the session cookie Secure.
func NewHandler(services Services, sessions *session.Manager, logger *slog.Logger, secure bool) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{services: services, sessions: sessions, logger: logger, secure: secure}
}

// MountRoutes registers the API endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/session", h.getSession)
	r.Put("/session", h.signIn)
	r.Delete("/session", h.signOut)

	r.Get("/invoices", h.listInvoices)
	r.Get("/assets/pending", h.listPendingAssets)
	r.Get("/chains/{uuid}", h.chainOverview)
	r.Get("/chains/{uuid}/progress", h.chainProgress)
	r.Get("/lookups/{kind}", h.lookup)

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(20, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/invoices/{uuid}/status", h.transitionInvoice)
		r.Post("/assets/{uuid}/put-to-use", h.putAssetToUse)
		r.Post("/payments", h.recordPayment)
	})
}

type sessionResponse struct {
	SignedIn bool          `json:"signedIn"`
	User     *session.User `json:"user,omitempty"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	httpx.JSON(w, http.StatusOK, sessionResponse{SignedIn: sess.SignedIn(), User: sess.Current})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var user session.User
	if err := httpx.DecodeJSON(r, &user); err != nil {
		httpx.RespondError(w, err)
		return
	}
	current := session.FromContext(r.Context())
	sess, err := h.sessions.SignIn(r.Context(), current.ID, user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(h.sessions.TTL()),
	})
	httpx.JSON(w, http.StatusOK, sessionResponse{SignedIn: true, User: sess.Current})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context(), session.FromContext(r.Context()).ID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := invoices.Filter{
		Status:     invoices.Status(q.Get("status")),
		Department: q.Get("department"),
		Branch:     q.Get("branch"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown status")
		return
	}
	if raw := q.Get("vendorId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "vendorId must be a positive integer")
			return
		}
		filter.VendorID = id
	}
	items, err := h.services.Invoices.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

type transitionRequest struct {
	Status  invoices.Status `json:"status"`
	Comment string          `json:"comment"`
}

func (h *Handler) transitionInvoice(w http.ResponseWriter, r *http.Request) {
	user, err := session.UserFromContext(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req transitionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	result, err := h.services.Invoices.Transition(r.Context(), invoices.TransitionInput{
		InvoiceUUID: chi.URLParam(r, "uuid"),
		Status:      req.Status,
		Comment:     strings.TrimSpace(req.Comment),
		UserID:      user.UserID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) listPendingAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.services.Assets.ListPending(r.Context(), assets.Filter{
		Department: q.Get("department"),
		Branch:     q.Get("branch"),
		Category:   q.Get("category"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

type putToUseRequest struct {
	PutToUseDate shared.Date `json:"putToUseDate"`
}

func (h *Handler) putAssetToUse(w http.ResponseWriter, r *http.Request) {
	user, err := session.UserFromContext(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req putToUseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	result, err := h.services.Assets.PutToUse(r.Context(), assets.PutToUseInput{
		AssetUUID:    chi.URLParam(r, "uuid"),
		PutToUseDate: req.PutToUseDate,
		UserID:       user.UserID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	user, err := session.UserFromContext(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var data payments.RecordPaymentData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.RespondError(w, err)
		return
	}
	data.UserID = user.UserID
	result, err := h.services.Payments.Record(r.Context(), data)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

type chainOverview struct {
	Chain        chains.DocumentChain    `json:"chain"`
	Timeline     chains.TimelineResponse `json:"timeline"`
	Stages       []workflow.Stage        `json:"stages"`
	CurrentStage *workflow.Stage         `json:"currentStage,omitempty"`
	Percent      int                     `json:"percent"`
}

func (h *Handler) chainOverview(w http.ResponseWriter, r *http.Request) {
	chainUUID := chi.URLParam(r, "uuid")
	var overview chainOverview
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		chain, err := h.services.Chains.Get(ctx, chainUUID)
		overview.Chain = chain
		return err
	})
	g.Go(func() error {
		timeline, err := h.services.Chains.Timeline(ctx, chainUUID)
		overview.Timeline = timeline
		return err
	})
	g.Go(func() error {
		stages, err := h.services.Chains.Progress(ctx, chainUUID, workflow.DashboardStages)
		overview.Stages = stages
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}
	if current, ok := workflow.CurrentStage(overview.Stages); ok {
		overview.CurrentStage = &current
	}
	overview.Percent = workflow.Percent(overview.Stages)
	httpx.JSON(w, http.StatusOK, overview)
}

type progressResponse struct {
	Variant string           `json:"variant"`
	Stages  []workflow.Stage `json:"stages"`
	Percent int              `json:"percent"`
}

func (h *Handler) chainProgress(w http.ResponseWriter, r *http.Request) {
	variant := r.URL.Query().Get("variant")
	set, ok := workflow.Variant(variant)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "variant must be dashboard or pipeline")
		return
	}
	if variant == "" {
		variant = "dashboard"
	}
	stages, err := h.services.Chains.Progress(r.Context(), chi.URLParam(r, "uuid"), set)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, progressResponse{Variant: variant, Stages: stages, Percent: workflow.Percent(stages)})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	kind, ok := lookups.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var (
		data any
		err  error
	)
	ctx := r.Context()
	switch kind {
	case lookups.KindDepartments:
		data, err = h.services.Lookups.Departments(ctx)
	case lookups.KindBranches:
		data, err = h.services.Lookups.Branches(ctx)
	case lookups.KindCategories:
		data, err = h.services.Lookups.Categories(ctx)
	case lookups.KindUsers:
		data, err = h.services.Lookups.Users(ctx, r.URL.Query().Get("role"))
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("api request failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestID(r)),
		slog.Any("error", err))
	httpx.RespondError(w, err)
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
