package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
	"github.com/recruitpipe/recruitpipe/internal/scoring"
)

// screenHandler registers an application and scores the candidate against
// the matching open position.
type screenHandler struct{}

func (screenHandler) Stage() Stage { return StageScreen }

func (screenHandler) Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error) {
	var app recruit.Application
	if err := decodePayload(in.Payload, &app); err != nil {
		return Outcome{}, err
	}
	if app.ID == "" && in.ID != "" {
		app.ID = in.ID
	}
	if app.ID == "" || strings.TrimSpace(app.Position) == "" {
		return Outcome{}, fmt.Errorf("%w: application requires id and position", ErrBadPayload)
	}

	cand, exists := state.Candidates[app.ID]
	if !exists {
		cand = recruit.NewCandidate(&app, deps.now())
		state.Candidates[cand.ID] = cand
	}
	// Re-screening overwrites the previous result while the candidate is
	// still in the screening phase; later phases make this a no-op.
	if cand.Status != recruit.StatusApplied && cand.Status != recruit.StatusScreened {
		return skipped(fmt.Sprintf("candidate %s is past screening (%s)", cand.ID, cand.Status)), nil
	}

	opening := state.OpeningByTitle(cand.AppliedPosition)
	if opening == nil {
		// Terminal business outcome, not a pipeline failure.
		cand.Screening = &recruit.ScreeningResult{
			Recommendation: recruit.RecommendReject,
			Rationale:      "no open position",
		}
		cand.AdvanceTo(recruit.StatusRejected)
		deps.log().Info("candidate rejected at screening",
			zap.String("candidate_id", cand.ID),
			zap.String("position", cand.AppliedPosition),
			zap.String("reason", "no open position"),
		)
		return Outcome{Status: "rejected: no open position", Processed: 1}, nil
	}

	cand.Screening = screenCandidate(cand, opening, state, deps)
	cand.AdvanceTo(recruit.StatusScreened)

	deps.log().Info("candidate screened",
		zap.String("candidate_id", cand.ID),
		zap.String("opening_id", opening.ID),
		zap.Float64("overall_score", cand.Screening.OverallScore),
		zap.String("recommendation", string(cand.Screening.Recommendation)),
	)

	return Outcome{Status: "completed", Processed: 1}, nil
}

// screenCandidate computes the full screening result. Invalid inputs degrade
// the affected sub-score to 0 and are logged as warnings, never raised.
func screenCandidate(cand *recruit.Candidate, opening *recruit.JobOpening, state *recruit.WorkflowState, deps Deps) *recruit.ScreeningResult {
	years := cand.ExperienceYears
	if years < 0 {
		cand.Warn("negative experience years; experience score degraded to 0")
		state.RecordError(string(StageScreen),
			fmt.Sprintf("candidate %s reported negative experience years", cand.ID), deps.now())
	}
	if strings.TrimSpace(cand.ResumeText) == "" {
		cand.Warn("empty resume text; skill score degraded to 0")
		state.RecordError(string(StageScreen),
			fmt.Sprintf("candidate %s submitted an empty resume", cand.ID), deps.now())
	}

	skills := scoring.AnalyzeSkills(opening.RequiredSkills, cand.ResumeText)
	experience := scoring.ExperienceMatch(opening.ExperienceMin, opening.ExperienceMax, years)
	cultural := scoring.CulturalFit(cand.CoverLetter, cand.ResumeText)
	overall := scoring.Composite(skills.Ratio, experience, cultural)

	return &recruit.ScreeningResult{
		SkillMatch:      skills.Ratio,
		ExperienceMatch: experience,
		CulturalFit:     cultural,
		OverallScore:    overall,
		Recommendation:  scoring.Tier(overall),
		Rationale:       screeningRationale(cand, opening, skills, overall),
		MatchedSkills:   skills.Matched,
		MissingSkills:   skills.Missing,
	}
}

func screeningRationale(cand *recruit.Candidate, opening *recruit.JobOpening, skills scoring.SkillAnalysis, overall float64) string {
	matched := "none"
	if len(skills.Matched) > 0 {
		matched = strings.Join(skills.Matched, ", ")
	}
	return fmt.Sprintf("%s scored %.1f/100 for %s: matched skills %s; %d of %d required skills present",
		cand.Name, overall, opening.Title, matched, len(skills.Matched), len(opening.RequiredSkills))
}
