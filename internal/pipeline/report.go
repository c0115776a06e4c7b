package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// reportHandler aggregates the summary artifact. It never fails: partial
// data still produces a summary.
type reportHandler struct{}

func (reportHandler) Stage() Stage { return StageReport }

func (reportHandler) Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error) {
	summary := recruit.BuildSummary(state)

	if state.Status == recruit.WorkflowRunning {
		if len(state.Errors) == 0 {
			state.Status = recruit.WorkflowCompleted
		} else {
			state.Status = recruit.WorkflowRecovered
		}
		summary.WorkflowStatus = state.Status
	}

	deps.log().Info("recruitment summary generated",
		zap.Int("openings", summary.TotalOpenings),
		zap.Int("candidates", summary.TotalCandidates),
		zap.Int("errors", len(summary.Errors)),
		zap.String("workflow_status", string(summary.WorkflowStatus)),
	)

	return Outcome{Status: "completed", Summary: summary}, nil
}
