// Package pipeline implements the hiring workflow: the six stage handlers
// (analyze, screen, schedule, interview, decide, report) and the
// orchestrator that drives them against one shared WorkflowState.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/ai"
	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// Stage names one pipeline step.
type Stage string

const (
	StageAnalyze   Stage = "analyze"
	StageScreen    Stage = "screen"
	StageSchedule  Stage = "schedule"
	StageInterview Stage = "interview"
	StageDecide    Stage = "decide"
	StageReport    Stage = "report"
)

// ParseStage maps an external stage name onto a known stage.
func ParseStage(s string) (Stage, bool) {
	switch Stage(s) {
	case StageAnalyze, StageScreen, StageSchedule, StageInterview, StageDecide, StageReport:
		return Stage(s), true
	default:
		return "", false
	}
}

// Config carries the fixed pipeline constants. Weights and thresholds are
// configuration, not runtime-derived values.
type Config struct {
	// HireThreshold is the minimum final score for a hire.
	HireThreshold float64
	// GenTimeout bounds every call into the text generation service.
	GenTimeout time.Duration
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		HireThreshold: 70,
		GenTimeout:    30 * time.Second,
	}
}

// Deps aggregates the dependencies shared across all stage handlers.
type Deps struct {
	// Gen is the text generation service. May be nil: every handler then
	// degrades to its documented fallback.
	Gen    ai.Generator
	Logger *zap.Logger
	// Now stamps timestamps; tests substitute a fixed clock.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Handler is a single pipeline stage: a transformation of WorkflowState plus
// a stage-specific input. Business failures are recorded on the state;
// returned errors signal caller misuse only.
type Handler interface {
	Stage() Stage
	Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error)
}

// Input carries the identifier and payload of one stage invocation. The
// payload arrives as a generic map from the external layer and is decoded
// into the stage's typed payload.
type Input struct {
	ID      string
	Payload map[string]any
}

// Outcome describes what a stage execution did. A stage invoked out of
// order produces a no-op outcome with an explanatory status, never an error.
type Outcome struct {
	Status    string
	Processed int
	Summary   *recruit.Summary
}

func skipped(reason string) Outcome {
	return Outcome{Status: "skipped: " + reason}
}

// decodePayload decodes the generic payload map into the stage's typed
// payload using json field names, the same way external API items are
// decoded elsewhere in the system.
func decodePayload(payload map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// encodePayload converts a typed payload into the generic map form the
// public API accepts. It is the inverse of decodePayload and is what
// in-process callers (the CLI) use to invoke stages.
func encodePayload(in any) map[string]any {
	out := map[string]any{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "json",
	})
	if err != nil {
		return out
	}
	_ = decoder.Decode(in)
	return out
}

// AnalyzePayload builds the analyze stage payload from employee rows.
func AnalyzePayload(employees []recruit.EmployeeRecord) map[string]any {
	return encodePayload(analyzePayload{Employees: employees})
}

// ApplicationPayload builds the screen stage payload from an application.
func ApplicationPayload(app *recruit.Application) map[string]any {
	return encodePayload(app)
}

// InterviewPayload builds the interview stage payload.
func InterviewPayload(stage recruit.InterviewStage, feedback string) map[string]any {
	return encodePayload(interviewPayload{Stage: string(stage), Feedback: feedback})
}
