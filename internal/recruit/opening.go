package recruit

// Priority reflects how urgently an opening must be filled.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// OpeningStatus is the lifecycle status of a job opening.
type OpeningStatus string

const (
	OpeningOpen      OpeningStatus = "open"
	OpeningFilled    OpeningStatus = "filled"
	OpeningCancelled OpeningStatus = "cancelled"
)

// JobOpening is a vacated position to be filled. Openings are created from
// employee records carrying a departure date and are keyed by the departed
// employee, so re-analysis of the same records never duplicates them.
type JobOpening struct {
	ID               string        `json:"id"`
	SourceEmployeeID string        `json:"source_employee_id"`
	EmployeeName     string        `json:"employee_name,omitempty"`
	Title            string        `json:"title"`
	Department       string        `json:"department"`
	RequiredSkills   []string      `json:"required_skills"`
	ExperienceMin    int           `json:"experience_min"`
	ExperienceMax    int           `json:"experience_max"`
	SalaryRange      string        `json:"salary_range,omitempty"`
	Priority         Priority      `json:"priority"`
	Description      string        `json:"description,omitempty"`
	Status           OpeningStatus `json:"status"`
	LastWorkingDay   string        `json:"last_working_day,omitempty"`
	Warnings         []string      `json:"warnings,omitempty"`
}

// Warn attaches a degraded-result warning to the opening.
func (o *JobOpening) Warn(msg string) {
	if msg == "" {
		return
	}
	o.Warnings = append(o.Warnings, msg)
}

// Clone returns a deep copy of the opening.
func (o *JobOpening) Clone() *JobOpening {
	if o == nil {
		return nil
	}
	out := *o
	out.RequiredSkills = append([]string(nil), o.RequiredSkills...)
	out.Warnings = append([]string(nil), o.Warnings...)
	return &out
}
