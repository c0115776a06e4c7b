package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// Caller-misuse errors. These are the only failures RunStage reports to the
// caller; everything else degrades and lands in the state error log.
var (
	// ErrUnknownStage marks an unrecognized stage name.
	ErrUnknownStage = errors.New("unknown stage")
	// ErrUnknownID marks a job or candidate identifier that does not exist.
	ErrUnknownID = errors.New("unknown id")
	// ErrBadPayload marks an undecodable or incomplete stage payload.
	ErrBadPayload = errors.New("invalid payload")
	// ErrNotReady marks a decision requested before its inputs exist.
	ErrNotReady = errors.New("stage inputs not ready")
)

// Result is the outcome of one stage invocation: an explanatory status, a
// deep snapshot of the workflow state and the accumulated error log.
type Result struct {
	Stage    Stage                  `json:"stage"`
	Status   string                 `json:"status"`
	Snapshot *recruit.WorkflowState `json:"snapshot"`
	Errors   []recruit.ErrorRecord  `json:"errors,omitempty"`
	Summary  *recruit.Summary       `json:"summary,omitempty"`
}

// Orchestrator owns the WorkflowState of one recruitment run and drives the
// stage handlers against it. A single mutex serializes every execution, so
// the external layer may invoke stages concurrently and in any order.
type Orchestrator struct {
	mu       sync.Mutex
	cfg      *Config
	deps     Deps
	state    *recruit.WorkflowState
	handlers map[Stage]Handler
}

// New creates an orchestrator with a fresh workflow state.
func New(cfg *Config, deps Deps) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	handlers := map[Stage]Handler{}
	for _, h := range []Handler{
		analyzeHandler{},
		screenHandler{},
		scheduleHandler{},
		interviewHandler{},
		decideHandler{},
		reportHandler{},
	} {
		handlers[h.Stage()] = h
	}

	return &Orchestrator{
		cfg:      cfg,
		deps:     deps,
		state:    recruit.NewWorkflowState(),
		handlers: handlers,
	}
}

// RunStage executes one pipeline stage against the workflow state. The
// returned error is reserved for caller misuse (unknown stage or id, bad
// payload, deciding before inputs exist); the state is left untouched in
// those cases. Business failures never surface here: they are recorded on
// the state and reflected in the result's error log.
func (o *Orchestrator) RunStage(ctx context.Context, stage Stage, id string, payload map[string]any) (*Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	handler, ok := o.handlers[stage]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}

	outcome, err := handler.Run(ctx, o.deps, o.cfg, o.state, Input{ID: id, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}

	o.state.CurrentStage = string(stage)

	o.deps.log().Info("stage executed",
		zap.String("stage", string(stage)),
		zap.String("status", outcome.Status),
		zap.Int("processed", outcome.Processed),
		zap.Int("errors_logged", len(o.state.Errors)),
	)

	return &Result{
		Stage:    stage,
		Status:   outcome.Status,
		Snapshot: o.state.Clone(),
		Errors:   append([]recruit.ErrorRecord(nil), o.state.Errors...),
		Summary:  outcome.Summary,
	}, nil
}

// Summary returns the report artifact: a pure read-only projection over the
// workflow state, with no side effects.
func (o *Orchestrator) Summary() *recruit.Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return recruit.BuildSummary(o.state)
}

// Snapshot returns a deep copy of the current workflow state.
func (o *Orchestrator) Snapshot() *recruit.WorkflowState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Clone()
}
