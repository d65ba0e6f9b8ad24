package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/odyssey-erp/procuredesk/internal/workflow"
)

// ProgressSource derives the stages of one chain.
type ProgressSource interface {
	Progress(ctx context.Context, chainUUID string, set workflow.StageSet) ([]workflow.Stage, error)
}

// ChainCLI inspects document chains from the terminal.
type ChainCLI struct {
	source ProgressSource
}

// NewChainCLI constructs the helper.
func NewChainCLI(source ProgressSource) *ChainCLI {
	return &ChainCLI{source: source}
}

// ProgressOptions defines the flags of the chain progress command.
type ProgressOptions struct {
	Output
	UUID    string
	Variant string
}

// ProgressSummary is the JSON response of chain progress.
type ProgressSummary struct {
	UUID    string           `json:"uuid"`
	Variant string           `json:"variant"`
	Current string           `json:"current,omitempty"`
	Percent int              `json:"percent"`
	Stages  []workflow.Stage `json:"stages"`
}

// ProgressCommand prints the stage table of one chain.
func (c *ChainCLI) ProgressCommand(ctx context.Context, opts ProgressOptions) int {
	stdout, stderr := opts.streams()
	if c == nil || c.source == nil {
		_, _ = fmt.Fprintln(stderr, "chain progress: client not configured")
		return 1
	}
	if opts.UUID == "" {
		_, _ = fmt.Fprintln(stderr, "chain progress: --uuid is required")
		return 1
	}
	set, ok := workflow.Variant(opts.Variant)
	if !ok {
		_, _ = fmt.Fprintf(stderr, "chain progress: unknown variant %q\n", opts.Variant)
		return 1
	}
	stages, err := c.source.Progress(ctx, opts.UUID, set)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "chain progress: %v\n", err)
		return 1
	}

	summary := ProgressSummary{UUID: opts.UUID, Variant: opts.Variant, Percent: workflow.Percent(stages), Stages: stages}
	if summary.Variant == "" {
		summary.Variant = "dashboard"
	}
	if current, ok := workflow.CurrentStage(stages); ok {
		summary.Current = string(current.Key)
	}
	if opts.JSON {
		return encodeJSON(stdout, stderr, "chain progress", summary)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STAGE\tSTATUS\tLABEL\tDOCS")
	for _, stage := range stages {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", stage.Name, stage.Class, stage.Label, stage.Count)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(stdout, "%d%% complete\n", summary.Percent)
	return 0
}
