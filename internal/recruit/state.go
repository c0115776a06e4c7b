package recruit

import (
	"fmt"
	"strings"
	"time"
)

// WorkflowStatus is the overall status of one recruitment run.
type WorkflowStatus string

const (
	WorkflowRunning   WorkflowStatus = "running"
	WorkflowCompleted WorkflowStatus = "completed"
	WorkflowFailed    WorkflowStatus = "failed"
	WorkflowRecovered WorkflowStatus = "recovered"
)

// ErrorRecord is one logged pipeline failure. Degraded-result errors land
// here instead of being raised to the caller.
type ErrorRecord struct {
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// WorkflowState is the single mutable record threaded through all pipeline
// stages of one recruitment run. The orchestrator owns it exclusively; stage
// handlers receive it under the orchestrator's lock and never concurrently.
type WorkflowState struct {
	Openings     map[string]*JobOpening `json:"openings"`
	Candidates   map[string]*Candidate  `json:"candidates"`
	CurrentStage string                 `json:"current_stage,omitempty"`
	Errors       []ErrorRecord          `json:"errors,omitempty"`
	Status       WorkflowStatus         `json:"status"`
}

// NewWorkflowState returns an empty running state.
func NewWorkflowState() *WorkflowState {
	return &WorkflowState{
		Openings:   make(map[string]*JobOpening),
		Candidates: make(map[string]*Candidate),
		Status:     WorkflowRunning,
	}
}

// RecordError appends a degraded-result error to the log. The workflow keeps
// running; nothing recorded here is raised to the caller.
func (s *WorkflowState) RecordError(stage, message string, at time.Time) {
	s.Errors = append(s.Errors, ErrorRecord{Stage: stage, Message: message, Time: at})
}

// OpeningByTitle returns the open opening matching the given position title,
// case-insensitively, or nil when none is open.
func (s *WorkflowState) OpeningByTitle(title string) *JobOpening {
	for _, opening := range s.Openings {
		if opening.Status == OpeningOpen && strings.EqualFold(opening.Title, title) {
			return opening
		}
	}
	return nil
}

// OpeningForTitle returns any opening matching the title regardless of
// status. Used by decision-time checks against already filled positions.
func (s *WorkflowState) OpeningForTitle(title string) *JobOpening {
	for _, opening := range s.Openings {
		if strings.EqualFold(opening.Title, title) {
			return opening
		}
	}
	return nil
}

// HiredFor returns the candidate hired for the opening, or nil.
func (s *WorkflowState) HiredFor(opening *JobOpening) *Candidate {
	for _, cand := range s.Candidates {
		if cand.Status == StatusHired && strings.EqualFold(cand.AppliedPosition, opening.Title) {
			return cand
		}
	}
	return nil
}

// Hire marks the candidate hired for the opening and fills it. At most one
// candidate may ever be hired per opening: a second assignment is rejected,
// logged as an internal-consistency error, and the first hire stands.
func (s *WorkflowState) Hire(cand *Candidate, opening *JobOpening, at time.Time) error {
	if existing := s.HiredFor(opening); existing != nil && existing.ID != cand.ID {
		msg := fmt.Sprintf("internal consistency: candidate %s already hired for opening %s, refusing to hire %s",
			existing.ID, opening.ID, cand.ID)
		s.RecordError("decide", msg, at)
		return fmt.Errorf("opening %s is already filled by candidate %s", opening.ID, existing.ID)
	}
	cand.AdvanceTo(StatusHired)
	opening.Status = OpeningFilled
	return nil
}

// Clone returns a deep copy of the state, safe to hand to callers as a
// snapshot while the original keeps mutating.
func (s *WorkflowState) Clone() *WorkflowState {
	if s == nil {
		return nil
	}
	out := &WorkflowState{
		Openings:     make(map[string]*JobOpening, len(s.Openings)),
		Candidates:   make(map[string]*Candidate, len(s.Candidates)),
		CurrentStage: s.CurrentStage,
		Errors:       append([]ErrorRecord(nil), s.Errors...),
		Status:       s.Status,
	}
	for id, opening := range s.Openings {
		out.Openings[id] = opening.Clone()
	}
	for id, cand := range s.Candidates {
		out.Candidates[id] = cand.Clone()
	}
	return out
}
