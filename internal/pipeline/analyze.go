package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
	"github.com/recruitpipe/recruitpipe/internal/scoring"
)

type analyzePayload struct {
	Employees []recruit.EmployeeRecord `json:"employees"`
}

// analyzeHandler turns departed-employee records into job openings and asks
// the generation service for posting descriptions.
type analyzeHandler struct{}

func (analyzeHandler) Stage() Stage { return StageAnalyze }

func (analyzeHandler) Run(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, in Input) (Outcome, error) {
	var p analyzePayload
	if err := decodePayload(in.Payload, &p); err != nil {
		return Outcome{}, err
	}

	var departed []recruit.EmployeeRecord
	for _, emp := range p.Employees {
		if emp.Departed() {
			departed = append(departed, emp)
		}
	}
	if len(departed) == 0 {
		return skipped("no departures in employee records"), nil
	}

	created, updated := 0, 0
	for _, emp := range departed {
		id := "job_" + emp.ID

		opening, exists := state.Openings[id]
		if !exists {
			min, max := scoring.ExperienceRange(emp.Position)
			opening = &recruit.JobOpening{
				ID:               id,
				SourceEmployeeID: emp.ID,
				EmployeeName:     emp.Name,
				Title:            emp.Position,
				Department:       emp.Department,
				RequiredSkills:   scoring.RequiredSkills(emp.Position, emp.Department),
				ExperienceMin:    min,
				ExperienceMax:    max,
				SalaryRange:      scoring.SalaryBand(emp.Position, emp.Salary),
				Priority:         scoring.OpeningPriority(emp.Department, emp.Position),
				Status:           recruit.OpeningOpen,
				LastWorkingDay:   emp.DepartureDate,
			}
			state.Openings[id] = opening
			created++
		} else {
			// Re-analysis refreshes the departure data but never duplicates
			// the opening or resets its lifecycle.
			opening.EmployeeName = emp.Name
			opening.LastWorkingDay = emp.DepartureDate
			updated++
		}

		if opening.Description == "" {
			describeOpening(ctx, deps, cfg, state, opening)
		}
	}

	deps.log().Info("analyzed employee records",
		zap.Int("departures", len(departed)),
		zap.Int("openings_created", created),
		zap.Int("openings_updated", updated),
	)

	return Outcome{Status: "completed", Processed: len(departed)}, nil
}

// describeOpening fills in the generated posting description. Generation
// failures are non-fatal: the opening is kept with an empty description, a
// warning on the entity and an error record on the state.
func describeOpening(ctx context.Context, deps Deps, cfg *Config, state *recruit.WorkflowState, opening *recruit.JobOpening) {
	if deps.Gen == nil {
		opening.Warn("job description unavailable: text generation is not configured")
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, cfg.GenTimeout)
	defer cancel()

	description, err := deps.Gen.JobDescription(genCtx, opening)
	if err != nil {
		msg := fmt.Sprintf("job description for opening %s unavailable: %v", opening.ID, err)
		opening.Warn(msg)
		state.RecordError(string(StageAnalyze), msg, deps.now())
		deps.log().Warn("job description generation failed",
			zap.String("opening_id", opening.ID),
			zap.Error(err),
		)
		return
	}
	opening.Description = description
}
