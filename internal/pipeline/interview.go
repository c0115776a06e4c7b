package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
	"github.com/recruitpipe/recruitpipe/internal/scoring"
)

type interviewPayload struct {
	Stage    string `json:"stage"`
	Feedback string `json:"feedback"`
}

// interviewHandler records one completed interview round with a stage score
// derived from the interviewer feedback.
type interviewHandler struct{}

func (interviewHandler) Stage() Stage { return StageInterview }

func (interviewHandler) Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error) {
	var p interviewPayload
	if err := decodePayload(in.Payload, &p); err != nil {
		return Outcome{}, err
	}

	cand, ok := state.Candidates[in.ID]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: candidate %q", ErrUnknownID, in.ID)
	}

	stage, ok := recruit.ParseInterviewStage(p.Stage)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: unknown interview stage %q", ErrBadPayload, p.Stage)
	}

	switch cand.Status {
	case recruit.StatusScreened, recruit.StatusInterviewed:
		// Re-running a stage overwrites the previous record.
	case recruit.StatusApplied:
		return skipped(fmt.Sprintf("candidate %s has not been screened", cand.ID)), nil
	default:
		return skipped(fmt.Sprintf("candidate %s is already decided (%s)", cand.ID, cand.Status)), nil
	}

	rec := &recruit.InterviewRecord{
		Stage:       stage,
		Questions:   questionsFromPlan(cand, stage),
		StageScore:  scoring.FeedbackScore(stage, p.Feedback),
		CompletedAt: deps.now(),
	}

	feedback := strings.TrimSpace(p.Feedback)
	if feedback == "" {
		msg := fmt.Sprintf("no feedback provided for %s interview of candidate %s", stage, cand.ID)
		cand.Warn(msg)
		state.RecordError(string(StageInterview), msg, deps.now())
	} else {
		rec.Feedback = []string{feedback}
	}

	cand.RecordInterview(rec)
	cand.AdvanceTo(recruit.StatusInterviewed)

	deps.log().Info("interview recorded",
		zap.String("candidate_id", cand.ID),
		zap.String("interview_stage", string(stage)),
		zap.Float64("stage_score", rec.StageScore),
	)

	return Outcome{Status: "completed", Processed: 1}, nil
}

func questionsFromPlan(cand *recruit.Candidate, stage recruit.InterviewStage) []string {
	if questions, ok := cand.InterviewPlan[stage]; ok && len(questions) > 0 {
		return append([]string(nil), questions...)
	}
	return DefaultQuestions(stage)
}
