// Package workflow derives per-stage progress for one procurement chain
// (quotation → LPO → delivery order → invoice → payment) from a snapshot of
// document counts and completion flags.
package workflow

// Snapshot is the backend's summary of one chain's documents.
type Snapshot struct {
	Quotations      int  `json:"quotations"`
	LPOs            int  `json:"lpos"`
	DeliveryOrders  int  `json:"deliveryOrders"`
	Invoices        int  `json:"invoices"`
	Payments        int  `json:"payments"`
	LPOApproved     bool `json:"lpoApproved"`
	DOReceived      bool `json:"doReceived"`
	InvoiceApproved bool `json:"invoiceApproved"`
	FullyPaid       bool `json:"fullyPaid"`
}

// Classification of a stage.
type Classification string

const (
	Completed Classification = "completed"
	Current   Classification = "current"
	Pending   Classification = "pending"
)

// StageKey identifies a stage.
type StageKey string

const (
	StageQuotation StageKey = "quotation"
	StageLPO       StageKey = "lpo"
	StageDelivery  StageKey = "delivery"
	StageInvoice   StageKey = "invoice"
	StagePayment   StageKey = "payment"
)

// Labels are the status texts of one stage. Active is used when the stage is
// current and already has documents, Next when it is current with none yet.
type Labels struct {
	Completed string
	Active    string
	Next      string
	Waiting   string
}

// StageDef describes how a stage reads the snapshot.
type StageDef struct {
	Key    StageKey
	Name   string
	Count  func(Snapshot) int
	Done   func(Snapshot) bool
	Labels Labels
}

// StageSet is an ordered list of stage definitions, upstream first.
type StageSet []StageDef

// Stage is one derived stage descriptor.
type Stage struct {
	Key   StageKey       `json:"key"`
	Name  string         `json:"name"`
	Class Classification `json:"status"`
	Label string         `json:"label"`
	Count int            `json:"count"`
}

var approvalLabels = Labels{Completed: "Approved", Active: "Pending Approval", Next: "NEXT", Waiting: "Waiting"}

var (
	quotationStage = StageDef{
		Key:    StageQuotation,
		Name:   "Quotation",
		Count:  func(s Snapshot) int { return s.Quotations },
		Done:   func(s Snapshot) bool { return s.Quotations > 0 },
		Labels: Labels{Completed: "Collected", Active: "Collected", Next: "NEXT", Waiting: "NEXT"},
	}
	lpoStage = StageDef{
		Key:    StageLPO,
		Name:   "LPO",
		Count:  func(s Snapshot) int { return s.LPOs },
		Done:   func(s Snapshot) bool { return s.LPOApproved },
		Labels: approvalLabels,
	}
	deliveryStage = StageDef{
		Key:    StageDelivery,
		Name:   "Delivery",
		Count:  func(s Snapshot) int { return s.DeliveryOrders },
		Done:   func(s Snapshot) bool { return s.DOReceived },
		Labels: Labels{Completed: "Received", Active: "Partial", Next: "NEXT", Waiting: "Waiting"},
	}
	invoiceStage = StageDef{
		Key:    StageInvoice,
		Name:   "Invoice",
		Count:  func(s Snapshot) int { return s.Invoices },
		Done:   func(s Snapshot) bool { return s.InvoiceApproved },
		Labels: approvalLabels,
	}
	paymentCount = func(s Snapshot) int { return s.Payments }
	paymentDone  = func(s Snapshot) bool { return s.FullyPaid }
)

// DashboardStages is the stage set of the chain progress card.
var DashboardStages = StageSet{
	quotationStage,
	lpoStage,
	deliveryStage,
	invoiceStage,
	{
		Key:    StagePayment,
		Name:   "Payment",
		Count:  paymentCount,
		Done:   paymentDone,
		Labels: Labels{Completed: "Paid", Active: "Partial", Next: "NEXT", Waiting: "Waiting"},
	},
}

// PipelineStages is the document pipeline view. It differs from
// DashboardStages only in the payment stage's Active label.
var PipelineStages = StageSet{
	quotationStage,
	lpoStage,
	deliveryStage,
	invoiceStage,
	{
		Key:    StagePayment,
		Name:   "Payment",
		Count:  paymentCount,
		Done:   paymentDone,
		Labels: Labels{Completed: "Paid", Active: "Uploaded", Next: "NEXT", Waiting: "Waiting"},
	},
}

// Variant resolves a stage set by name: "dashboard" (the default for an empty
// name) or "pipeline".
func Variant(name string) (StageSet, bool) {
	switch name {
	case "", "dashboard":
		return DashboardStages, true
	case "pipeline":
		return PipelineStages, true
	}
	return nil, false
}

// Progress derives the dashboard stages for s.
func Progress(s Snapshot) []Stage {
	return Derive(s, DashboardStages)
}

// Derive classifies every stage of set against s.
//
// A stage counts as done when its own flag holds or any downstream stage is
// done, so a completed stage never sits behind an unfinished one. A stage that
// is not done is current when it already has documents or its upstream stage
// is done, and pending otherwise. The first stage is never pending.
func Derive(s Snapshot, set StageSet) []Stage {
	done := make([]bool, len(set))
	downstream := false
	for i := len(set) - 1; i >= 0; i-- {
		done[i] = downstream || set[i].Done(s)
		downstream = done[i]
	}

	stages := make([]Stage, len(set))
	for i, def := range set {
		count := def.Count(s)
		class := Pending
		switch {
		case done[i]:
			class = Completed
		case count > 0, i == 0, done[i-1]:
			class = Current
		}
		stages[i] = Stage{
			Key:   def.Key,
			Name:  def.Name,
			Class: class,
			Label: label(def.Labels, class, count),
			Count: count,
		}
	}
	return stages
}

func label(l Labels, class Classification, count int) string {
	switch class {
	case Completed:
		return l.Completed
	case Current:
		if count > 0 {
			return l.Active
		}
		return l.Next
	default:
		return l.Waiting
	}
}

// CurrentStage returns the first stage still in progress.
func CurrentStage(stages []Stage) (Stage, bool) {
	for _, stage := range stages {
		if stage.Class == Current {
			return stage, true
		}
	}
	return Stage{}, false
}

// Percent is the share of completed stages, from 0 to 100.
func Percent(stages []Stage) int {
	if len(stages) == 0 {
		return 0
	}
	completed := 0
	for _, stage := range stages {
		if stage.Class == Completed {
			completed++
		}
	}
	return completed * 100 / len(stages)
}
