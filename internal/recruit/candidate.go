package recruit

import "time"

// CandidateStatus is the position of a candidate in the hiring pipeline.
// Statuses only move forward: a stage handler may keep a candidate where it
// is or advance it, never regress it.
type CandidateStatus string

const (
	StatusApplied     CandidateStatus = "applied"
	StatusScreened    CandidateStatus = "screened"
	StatusInterviewed CandidateStatus = "interviewed"
	StatusHired       CandidateStatus = "hired"
	StatusRejected    CandidateStatus = "rejected"
)

// statusRank orders statuses for the forward-only transition rule. Hired and
// Rejected share the terminal "decided" rank.
var statusRank = map[CandidateStatus]int{
	StatusApplied:     1,
	StatusScreened:    2,
	StatusInterviewed: 3,
	StatusHired:       4,
	StatusRejected:    4,
}

// Recommendation is the screening verdict tier.
type Recommendation string

const (
	RecommendStrongFit Recommendation = "strong_fit"
	RecommendFit       Recommendation = "fit"
	RecommendWeak      Recommendation = "weak"
	RecommendReject    Recommendation = "reject"
)

// InterviewStage names a simulated interview round.
type InterviewStage string

const (
	StageTechnical  InterviewStage = "technical"
	StageBehavioral InterviewStage = "behavioral"
)

// InterviewStages returns the rounds every scheduled candidate goes through,
// in interview order.
func InterviewStages() []InterviewStage {
	return []InterviewStage{StageTechnical, StageBehavioral}
}

// ParseInterviewStage maps an external stage name onto the known rounds.
func ParseInterviewStage(s string) (InterviewStage, bool) {
	switch InterviewStage(s) {
	case StageTechnical, StageBehavioral:
		return InterviewStage(s), true
	default:
		return "", false
	}
}

// ScreeningResult holds the scoring engine output for one candidate.
type ScreeningResult struct {
	SkillMatch      float64        `json:"skill_match"`
	ExperienceMatch float64        `json:"experience_match"`
	CulturalFit     float64        `json:"cultural_fit"`
	OverallScore    float64        `json:"overall_score"`
	Recommendation  Recommendation `json:"recommendation"`
	Rationale       string         `json:"rationale,omitempty"`
	MatchedSkills   []string       `json:"matched_skills,omitempty"`
	MissingSkills   []string       `json:"missing_skills,omitempty"`
}

// Clone returns a deep copy of the screening result.
func (r *ScreeningResult) Clone() *ScreeningResult {
	if r == nil {
		return nil
	}
	out := *r
	out.MatchedSkills = append([]string(nil), r.MatchedSkills...)
	out.MissingSkills = append([]string(nil), r.MissingSkills...)
	return &out
}

// InterviewRecord captures one completed interview round.
type InterviewRecord struct {
	Stage       InterviewStage `json:"stage"`
	Questions   []string       `json:"questions,omitempty"`
	Feedback    []string       `json:"feedback,omitempty"`
	StageScore  float64        `json:"stage_score"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Clone returns a deep copy of the record.
func (r *InterviewRecord) Clone() *InterviewRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Questions = append([]string(nil), r.Questions...)
	out.Feedback = append([]string(nil), r.Feedback...)
	return &out
}

// Application is the payload a candidate submits for an open position. It is
// the input of the screening stage; the web layer passes it through as-is.
type Application struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Position        string `json:"position"`
	ExperienceYears int    `json:"experience_years"`
	ResumeText      string `json:"resume_text"`
	CoverLetter     string `json:"cover_letter,omitempty"`
}

// Candidate is one applicant moving through the pipeline.
type Candidate struct {
	ID              string                              `json:"id"`
	Name            string                              `json:"name"`
	Email           string                              `json:"email,omitempty"`
	Phone           string                              `json:"phone,omitempty"`
	AppliedPosition string                              `json:"applied_position"`
	ExperienceYears int                                 `json:"experience_years"`
	ResumeText      string                              `json:"resume_text,omitempty"`
	CoverLetter     string                              `json:"cover_letter,omitempty"`
	Status          CandidateStatus                     `json:"status"`
	Screening       *ScreeningResult                    `json:"screening,omitempty"`
	InterviewPlan   map[InterviewStage][]string         `json:"interview_plan,omitempty"`
	Interviews      map[InterviewStage]*InterviewRecord `json:"interviews,omitempty"`
	FinalScore      *float64                            `json:"final_score,omitempty"`
	DecisionNotes   string                              `json:"decision_notes,omitempty"`
	AppliedAt       time.Time                           `json:"applied_at"`
	Warnings        []string                            `json:"warnings,omitempty"`
}

// NewCandidate registers an application as a candidate in the Applied state.
func NewCandidate(app *Application, appliedAt time.Time) *Candidate {
	return &Candidate{
		ID:              app.ID,
		Name:            app.Name,
		Email:           app.Email,
		Phone:           app.Phone,
		AppliedPosition: app.Position,
		ExperienceYears: app.ExperienceYears,
		ResumeText:      app.ResumeText,
		CoverLetter:     app.CoverLetter,
		Status:          StatusApplied,
		AppliedAt:       appliedAt,
	}
}

// AdvanceTo moves the candidate to the given status. Regressions are ignored,
// keeping the forward-only invariant without burdening callers.
func (c *Candidate) AdvanceTo(status CandidateStatus) {
	if statusRank[status] >= statusRank[c.Status] {
		c.Status = status
	}
}

// Decided reports whether the candidate reached a terminal status.
func (c *Candidate) Decided() bool {
	return c.Status == StatusHired || c.Status == StatusRejected
}

// RecordInterview stores the record for its stage, overwriting any previous
// run of the same stage.
func (c *Candidate) RecordInterview(rec *InterviewRecord) {
	if c.Interviews == nil {
		c.Interviews = make(map[InterviewStage]*InterviewRecord)
	}
	c.Interviews[rec.Stage] = rec
}

// PlannedStages returns the interview rounds the candidate must complete:
// the scheduled plan when one exists, the default rounds otherwise.
func (c *Candidate) PlannedStages() []InterviewStage {
	if len(c.InterviewPlan) == 0 {
		return InterviewStages()
	}
	stages := make([]InterviewStage, 0, len(c.InterviewPlan))
	for _, stage := range InterviewStages() {
		if _, ok := c.InterviewPlan[stage]; ok {
			stages = append(stages, stage)
		}
	}
	return stages
}

// InterviewsComplete reports whether every planned stage has a record.
func (c *Candidate) InterviewsComplete() bool {
	for _, stage := range c.PlannedStages() {
		if c.Interviews[stage] == nil {
			return false
		}
	}
	return true
}

// Warn attaches a degraded-result warning to the candidate.
func (c *Candidate) Warn(msg string) {
	if msg == "" {
		return
	}
	c.Warnings = append(c.Warnings, msg)
}

// Clone returns a deep copy of the candidate.
func (c *Candidate) Clone() *Candidate {
	if c == nil {
		return nil
	}
	out := *c
	out.Screening = c.Screening.Clone()
	out.Warnings = append([]string(nil), c.Warnings...)
	if c.FinalScore != nil {
		score := *c.FinalScore
		out.FinalScore = &score
	}
	if c.InterviewPlan != nil {
		out.InterviewPlan = make(map[InterviewStage][]string, len(c.InterviewPlan))
		for stage, questions := range c.InterviewPlan {
			out.InterviewPlan[stage] = append([]string(nil), questions...)
		}
	}
	if c.Interviews != nil {
		out.Interviews = make(map[InterviewStage]*InterviewRecord, len(c.Interviews))
		for stage, rec := range c.Interviews {
			out.Interviews[stage] = rec.Clone()
		}
	}
	return &out
}
