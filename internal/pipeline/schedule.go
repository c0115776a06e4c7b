package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// defaultQuestions are the fixed fallback question sets used whenever the
// generation service is unavailable. Scheduling never blocks progression.
var defaultQuestions = map[recruit.InterviewStage][]string{
	recruit.StageTechnical: {
		"Describe your experience with relevant technologies.",
		"How do you approach debugging complex issues?",
		"Explain a challenging project you worked on.",
		"What development methodologies do you prefer?",
		"How do you stay updated with industry trends?",
	},
	recruit.StageBehavioral: {
		"Describe your ideal work environment.",
		"How do you handle conflicts with colleagues?",
		"What motivates you in your work?",
		"Where do you see yourself in 5 years?",
		"How do you handle stress and pressure?",
	},
}

// DefaultQuestions returns the fallback question set for a stage.
func DefaultQuestions(stage recruit.InterviewStage) []string {
	return append([]string(nil), defaultQuestions[stage]...)
}

// scheduleHandler prepares the interview plan for a screened candidate,
// asking the generation service for a question set per interview stage.
type scheduleHandler struct{}

func (scheduleHandler) Stage() Stage { return StageSchedule }

func (scheduleHandler) Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error) {
	cand, ok := state.Candidates[in.ID]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: candidate %q", ErrUnknownID, in.ID)
	}

	if cand.Status != recruit.StatusScreened {
		return skipped(fmt.Sprintf("candidate %s is not in the screened state (%s)", cand.ID, cand.Status)), nil
	}
	if cand.Screening == nil || cand.Screening.Recommendation == recruit.RecommendReject {
		return skipped(fmt.Sprintf("candidate %s screening recommendation is reject", cand.ID)), nil
	}

	plan := make(map[recruit.InterviewStage][]string, len(recruit.InterviewStages()))
	for _, stage := range recruit.InterviewStages() {
		plan[stage] = questionsFor(ctx, deps, cfg, state, cand, stage)
	}
	cand.InterviewPlan = plan

	deps.log().Info("interview plan scheduled",
		zap.String("candidate_id", cand.ID),
		zap.Int("stages", len(plan)),
	)

	return Outcome{Status: "completed", Processed: len(plan)}, nil
}

// questionsFor fetches the generated question set for one stage, falling
// back to the fixed defaults on any failure.
func questionsFor(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, cand *recruit.Candidate, stage recruit.InterviewStage) []string {
	if deps.Gen == nil {
		return DefaultQuestions(stage)
	}

	opening := state.OpeningForTitle(cand.AppliedPosition)
	if opening == nil {
		return DefaultQuestions(stage)
	}

	genCtx, cancel := context.WithTimeout(ctx, cfg.GenTimeout)
	defer cancel()

	questions, err := deps.Gen.InterviewQuestions(genCtx, stage, opening)
	if err != nil {
		msg := fmt.Sprintf("generated %s questions unavailable for candidate %s, using defaults: %v", stage, cand.ID, err)
		cand.Warn(msg)
		state.RecordError(string(StageSchedule), msg, deps.now())
		deps.log().Warn("question generation failed",
			zap.String("candidate_id", cand.ID),
			zap.String("interview_stage", string(stage)),
			zap.Error(err),
		)
		return DefaultQuestions(stage)
	}
	return questions
}
