package recruit

import (
	"testing"
	"time"
)

func TestBuildSummary(t *testing.T) {
	t.Parallel()

	state := NewWorkflowState()
	state.Openings["job_e1"] = &JobOpening{ID: "job_e1", Title: "Software Engineer", Status: OpeningFilled}
	state.Openings["job_e2"] = &JobOpening{ID: "job_e2", Title: "Data Analyst", Status: OpeningOpen}

	state.Candidates["c1"] = &Candidate{
		ID: "c1", Name: "Ada", AppliedPosition: "Software Engineer", Status: StatusHired,
		Screening: &ScreeningResult{OverallScore: 88, MissingSkills: []string{"Agile"}},
	}
	state.Candidates["c2"] = &Candidate{
		ID: "c2", Name: "Ben", AppliedPosition: "Software Engineer", Status: StatusRejected,
		Screening: &ScreeningResult{OverallScore: 72, MissingSkills: []string{"SQL", "Agile"}},
	}
	state.Candidates["c3"] = &Candidate{
		ID: "c3", Name: "Cal", AppliedPosition: "Data Analyst", Status: StatusScreened,
		Screening: &ScreeningResult{OverallScore: 45, MissingSkills: []string{"SQL"}},
	}
	state.RecordError("analyze", "generation timed out", time.Now())

	summary := BuildSummary(state)

	if summary.TotalOpenings != 2 || summary.TotalCandidates != 3 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.CandidatesByState[StatusHired] != 1 || summary.CandidatesByState[StatusRejected] != 1 {
		t.Fatalf("unexpected status counts: %v", summary.CandidatesByState)
	}

	if len(summary.Openings) != 2 || summary.Openings[0].ID != "job_e1" {
		t.Fatalf("expected openings sorted by id, got %v", summary.Openings)
	}
	if summary.Openings[0].HiredID != "c1" || summary.Openings[0].HiredName != "Ada" {
		t.Fatalf("expected hire attached to filled opening, got %+v", summary.Openings[0])
	}
	if summary.Openings[1].HiredID != "" {
		t.Fatalf("open position must not report a hire")
	}

	if summary.ScoreDistribution["85-100"] != 1 || summary.ScoreDistribution["70-84"] != 1 || summary.ScoreDistribution["0-49"] != 1 {
		t.Fatalf("unexpected score distribution: %v", summary.ScoreDistribution)
	}

	if len(summary.TopCandidates) != 3 || summary.TopCandidates[0].ID != "c1" {
		t.Fatalf("expected candidates ranked by score, got %v", summary.TopCandidates)
	}

	// SQL missed twice, Agile missed twice; ties break alphabetically.
	if len(summary.MostMissedSkills) != 2 || summary.MostMissedSkills[0] != "Agile" || summary.MostMissedSkills[1] != "SQL" {
		t.Fatalf("unexpected missed skills: %v", summary.MostMissedSkills)
	}

	wantRate := 100.0 / 3.0
	if diff := summary.HiringSuccessRate - wantRate; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected success rate: %v", summary.HiringSuccessRate)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected error log carried into summary")
	}
}

func TestBuildSummaryEmptyState(t *testing.T) {
	t.Parallel()

	summary := BuildSummary(NewWorkflowState())
	if summary.TotalOpenings != 0 || summary.TotalCandidates != 0 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.HiringSuccessRate != 0 {
		t.Fatalf("expected zero success rate for empty state, got %v", summary.HiringSuccessRate)
	}
	if summary.WorkflowStatus != WorkflowRunning {
		t.Fatalf("unexpected workflow status: %s", summary.WorkflowStatus)
	}
}

func TestBuildSummaryCapsTopCandidates(t *testing.T) {
	t.Parallel()

	state := NewWorkflowState()
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"} {
		state.Candidates[id] = &Candidate{
			ID: id, Status: StatusScreened,
			Screening: &ScreeningResult{OverallScore: 60},
		}
	}

	summary := BuildSummary(state)
	if len(summary.TopCandidates) != 5 {
		t.Fatalf("expected top candidate list capped at 5, got %d", len(summary.TopCandidates))
	}
}
