// Package ai defines the text generation boundary the pipeline depends on.
// The pipeline treats every generation failure as non-fatal and degrades to
// a documented fallback instead of propagating the error.
package ai

import (
	"context"
	"fmt"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// Generator produces natural-language artifacts for the pipeline. The
// orchestrator is the sole caller and wraps every call in a timeout.
type Generator interface {
	// JobDescription writes a posting description for the opening.
	JobDescription(ctx context.Context, opening *recruit.JobOpening) (string, error)

	// InterviewQuestions produces the question set for one interview stage
	// of the opening.
	InterviewQuestions(ctx context.Context, stage recruit.InterviewStage, opening *recruit.JobOpening) ([]string, error)
}

// ServiceError wraps a provider failure (timeout, network, quota). Callers
// must treat it as a degraded result, never as a pipeline failure.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("text generation %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
