package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
	"github.com/recruitpipe/recruitpipe/internal/scoring"
)

// decideHandler ranks every fully-interviewed candidate competing for the
// same opening and emits the hiring decision: the top candidate is hired
// when its final score clears the threshold, the rest are rejected.
type decideHandler struct{}

func (decideHandler) Stage() Stage { return StageDecide }

func (decideHandler) Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error) {
	cand, ok := state.Candidates[in.ID]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: candidate %q", ErrUnknownID, in.ID)
	}

	if cand.Decided() {
		return skipped(fmt.Sprintf("candidate %s is already decided (%s)", cand.ID, cand.Status)), nil
	}
	// Deciding before the screening and all planned interviews exist is
	// caller misuse, distinct from a business rejection.
	if cand.Screening == nil {
		return Outcome{}, fmt.Errorf("%w: candidate %s has no screening result", ErrNotReady, cand.ID)
	}
	if !cand.InterviewsComplete() {
		return Outcome{}, fmt.Errorf("%w: candidate %s has incomplete interviews", ErrNotReady, cand.ID)
	}

	opening := state.OpeningForTitle(cand.AppliedPosition)
	if opening == nil {
		return Outcome{}, fmt.Errorf("%w: no opening for position %q", ErrUnknownID, cand.AppliedPosition)
	}

	contenders := rankContenders(state, opening)

	decided := 0
	for i, contender := range contenders {
		score := *contender.FinalScore
		switch {
		case i == 0 && score >= cfg.HireThreshold && opening.Status == recruit.OpeningOpen:
			if err := state.Hire(contender, opening, deps.now()); err != nil {
				contender.AdvanceTo(recruit.StatusRejected)
				contender.DecisionNotes = "position already filled"
				break
			}
			contender.DecisionNotes = fmt.Sprintf("hired with final score %.1f", score)
		case score >= cfg.HireThreshold:
			contender.AdvanceTo(recruit.StatusRejected)
			contender.DecisionNotes = "qualified, but another applicant was selected for this position"
		default:
			contender.AdvanceTo(recruit.StatusRejected)
			contender.DecisionNotes = fmt.Sprintf("final score %.1f below hire threshold %.1f", score, cfg.HireThreshold)
		}
		decided++

		deps.log().Info("hiring decision",
			zap.String("candidate_id", contender.ID),
			zap.String("opening_id", opening.ID),
			zap.Float64("final_score", score),
			zap.String("status", string(contender.Status)),
		)
	}

	return Outcome{Status: "completed", Processed: decided}, nil
}

// rankContenders computes final scores for every undecided candidate with
// completed interviews for the opening and ranks them: highest final score
// first, exact ties broken by earliest application, then by id for
// determinism.
func rankContenders(state *recruit.WorkflowState, opening *recruit.JobOpening) []*recruit.Candidate {
	var contenders []*recruit.Candidate
	for _, cand := range state.Candidates {
		if cand.Decided() || cand.Screening == nil {
			continue
		}
		if !strings.EqualFold(cand.AppliedPosition, opening.Title) {
			continue
		}
		if !cand.InterviewsComplete() {
			continue
		}

		var stageScores []float64
		for _, stage := range cand.PlannedStages() {
			stageScores = append(stageScores, cand.Interviews[stage].StageScore)
		}
		score := scoring.FinalScore(cand.Screening.OverallScore, stageScores)
		cand.FinalScore = &score

		contenders = append(contenders, cand)
	}

	sort.Slice(contenders, func(i, j int) bool {
		if *contenders[i].FinalScore != *contenders[j].FinalScore {
			return *contenders[i].FinalScore > *contenders[j].FinalScore
		}
		if !contenders[i].AppliedAt.Equal(contenders[j].AppliedAt) {
			return contenders[i].AppliedAt.Before(contenders[j].AppliedAt)
		}
		return contenders[i].ID < contenders[j].ID
	})

	return contenders
}
