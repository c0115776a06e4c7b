package recruit

import "sort"

// OpeningFill is the fill status of one opening in the summary.
type OpeningFill struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    OpeningStatus `json:"status"`
	HiredID   string        `json:"hired_id,omitempty"`
	HiredName string        `json:"hired_name,omitempty"`
}

// RankedCandidate is a summary row for the top candidate listing.
type RankedCandidate struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Position string          `json:"position"`
	Score    float64         `json:"score"`
	Status   CandidateStatus `json:"status"`
}

// Summary is the durable report artifact of one recruitment run: a pure
// projection over WorkflowState that the external layer renders to
// Markdown or JSON.
type Summary struct {
	TotalOpenings     int                     `json:"total_openings"`
	TotalCandidates   int                     `json:"total_candidates"`
	CandidatesByState map[CandidateStatus]int `json:"candidates_by_status"`
	Openings          []OpeningFill           `json:"openings"`
	ScoreDistribution map[string]int          `json:"score_distribution"`
	HiringSuccessRate float64                 `json:"hiring_success_rate"`
	TopCandidates     []RankedCandidate       `json:"top_candidates,omitempty"`
	MostMissedSkills  []string                `json:"most_missed_skills,omitempty"`
	Errors            []ErrorRecord           `json:"errors,omitempty"`
	WorkflowStatus    WorkflowStatus          `json:"workflow_status"`
}

// scoreBucket places an overall score into a distribution bucket aligned
// with the recommendation tiers.
func scoreBucket(score float64) string {
	switch {
	case score >= 85:
		return "85-100"
	case score >= 70:
		return "70-84"
	case score >= 50:
		return "50-69"
	default:
		return "0-49"
	}
}

// BuildSummary aggregates the report artifact from whatever state exists.
// It never fails: partial data still produces a summary.
func BuildSummary(s *WorkflowState) *Summary {
	summary := &Summary{
		TotalOpenings:     len(s.Openings),
		TotalCandidates:   len(s.Candidates),
		CandidatesByState: make(map[CandidateStatus]int),
		ScoreDistribution: make(map[string]int),
		Errors:            append([]ErrorRecord(nil), s.Errors...),
		WorkflowStatus:    s.Status,
	}

	for _, opening := range s.Openings {
		fill := OpeningFill{ID: opening.ID, Title: opening.Title, Status: opening.Status}
		if hired := s.HiredFor(opening); hired != nil {
			fill.HiredID = hired.ID
			fill.HiredName = hired.Name
		}
		summary.Openings = append(summary.Openings, fill)
	}
	sort.Slice(summary.Openings, func(i, j int) bool {
		return summary.Openings[i].ID < summary.Openings[j].ID
	})

	missed := make(map[string]int)
	hired := 0
	for _, cand := range s.Candidates {
		summary.CandidatesByState[cand.Status]++
		if cand.Status == StatusHired {
			hired++
		}
		if cand.Screening != nil {
			summary.ScoreDistribution[scoreBucket(cand.Screening.OverallScore)]++
			for _, skill := range cand.Screening.MissingSkills {
				missed[skill]++
			}
			summary.TopCandidates = append(summary.TopCandidates, RankedCandidate{
				ID:       cand.ID,
				Name:     cand.Name,
				Position: cand.AppliedPosition,
				Score:    cand.Screening.OverallScore,
				Status:   cand.Status,
			})
		}
	}

	sort.Slice(summary.TopCandidates, func(i, j int) bool {
		if summary.TopCandidates[i].Score != summary.TopCandidates[j].Score {
			return summary.TopCandidates[i].Score > summary.TopCandidates[j].Score
		}
		return summary.TopCandidates[i].ID < summary.TopCandidates[j].ID
	})
	if len(summary.TopCandidates) > 5 {
		summary.TopCandidates = summary.TopCandidates[:5]
	}

	summary.MostMissedSkills = topMissedSkills(missed, 3)

	if len(s.Candidates) > 0 {
		summary.HiringSuccessRate = float64(hired) / float64(len(s.Candidates)) * 100
	}

	return summary
}

func topMissedSkills(counts map[string]int, limit int) []string {
	type skillCount struct {
		skill string
		count int
	}
	ranked := make([]skillCount, 0, len(counts))
	for skill, count := range counts {
		ranked = append(ranked, skillCount{skill, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].skill < ranked[j].skill
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	skills := make([]string, 0, len(ranked))
	for _, sc := range ranked {
		skills = append(skills, sc.skill)
	}
	return skills
}
