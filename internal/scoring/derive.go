package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// departmentSkills maps departments onto their baseline skill sets.
var departmentSkills = map[string][]string{
	"Engineering":          {"Software Development", "DevOps", "Data Engineering", "QA"},
	"Analytics":            {"Data Analysis", "Business Intelligence", "Machine Learning"},
	"Marketing":            {"Digital Marketing", "Content Creation", "SEO", "Social Media"},
	"IT":                   {"System Administration", "Network Engineering", "Cloud Computing"},
	"Human Resources":      {"Recruitment", "Employee Relations", "Training"},
	"Finance":              {"Financial Analysis", "Accounting", "Budgeting"},
	"Design":               {"UI/UX Design", "Graphic Design", "Product Design"},
	"Sales":                {"Business Development", "Account Management", "Lead Generation"},
	"Quality Assurance":    {"Testing", "Quality Control", "Process Improvement"},
	"Business Development": {"Strategy", "Partnerships", "Market Research"},
	"Operations":           {"Project Management", "Process Optimization", "Supply Chain"},
	"Customer Service":     {"Support", "Client Relations", "Problem Resolution"},
}

// positionSkills maps well-known position titles onto their specific skills.
var positionSkills = map[string][]string{
	"Software Engineer":        {"Python", "JavaScript", "SQL", "Git", "Agile"},
	"Senior Software Engineer": {"Python", "JavaScript", "SQL", "Git", "Agile", "System Design", "Leadership"},
	"Data Analyst":             {"SQL", "Python", "Excel", "Data Visualization", "Statistical Analysis"},
	"DevOps Engineer":          {"Linux", "Docker", "Kubernetes", "AWS/Azure", "CI/CD", "Infrastructure as Code"},
	"Marketing Specialist":     {"Digital Marketing", "Social Media", "Content Creation", "Analytics Tools"},
	"HR Manager":               {"HRIS", "Employee Relations", "Recruitment", "Labor Law", "Performance Management"},
	"Financial Analyst":        {"Financial Modeling", "Excel", "Accounting Software", "Financial Analysis"},
	"Cloud Architect":          {"AWS", "Azure", "GCP", "Terraform", "Microservices", "Security"},
	"Product Designer":         {"UI/UX Design", "Figma", "User Research", "Prototyping", "Design Systems"},
	"Sales Executive":          {"CRM", "Sales Techniques", "Negotiation", "Relationship Building"},
	"QA Engineer":              {"Testing Tools", "Automation", "Test Planning", "Bug Tracking", "Quality Standards"},
}

// RequiredSkills derives the skill set for an opening from its department
// and position tables, deduplicated and sorted for stable output.
func RequiredSkills(position, department string) []string {
	seen := make(map[string]bool)
	var skills []string
	add := func(list []string) {
		for _, skill := range list {
			if !seen[skill] {
				seen[skill] = true
				skills = append(skills, skill)
			}
		}
	}
	add(departmentSkills[department])
	add(positionSkills[position])
	sort.Strings(skills)
	return skills
}

// ExperienceRange derives the required experience range (years) from the
// position seniority: junior roles 0-2, senior and managerial roles 5-10,
// everything else 2-5.
func ExperienceRange(position string) (min, max int) {
	switch {
	case containsAny(position, "Senior", "Manager", "Lead", "Architect", "Director"):
		return 5, 10
	case containsAny(position, "Junior", "Intern"):
		return 0, 2
	default:
		return 2, 5
	}
}

// criticalDepartments hire with elevated priority.
var criticalDepartments = map[string]bool{
	"Engineering": true,
	"IT":          true,
	"Finance":     true,
}

// OpeningPriority derives the hiring priority for an opening. A senior role
// in a critical department is urgent; either alone is high; marketing and
// sales are medium; everything else is low.
func OpeningPriority(department, position string) recruit.Priority {
	criticalDept := criticalDepartments[department]
	criticalRole := containsAny(position, "Senior", "Manager", "Lead", "Architect", "Director")

	switch {
	case criticalDept && criticalRole:
		return recruit.PriorityUrgent
	case criticalDept || criticalRole:
		return recruit.PriorityHigh
	case department == "Marketing" || department == "Sales":
		return recruit.PriorityMedium
	default:
		return recruit.PriorityLow
	}
}

// salaryBands are annual CTC bands in INR LPA by role seniority, reflecting
// typical metro-market ranges rather than direct USD conversion.
var salaryBands = []struct {
	keyword  string
	min, max int
}{
	{"Intern", 3, 6},
	{"Junior", 4, 8},
	{"Associate", 6, 12},
	{"Engineer", 8, 18},
	{"Senior", 18, 35},
	{"Lead", 28, 45},
	{"Manager", 30, 55},
	{"Architect", 35, 60},
	{"Director", 55, 90},
}

// SalaryBand derives the advertised salary range for a position. The
// departing employee's USD salary nudges the band by at most ±15% to anchor
// expectations without letting conversion dominate. Seniority keywords are
// checked in band order, most specific modifiers first.
func SalaryBand(position string, previousSalaryUSD float64) string {
	normalized := strings.ToLower(strings.TrimSpace(position))

	min, max := 8, 18 // default engineer band
	for _, band := range salaryBands {
		if strings.Contains(normalized, strings.ToLower(band.keyword)) {
			min, max = band.min, band.max
		}
	}

	if previousSalaryUSD > 0 {
		influence := (previousSalaryUSD - 60000.0) / 400000.0
		if influence > 0.15 {
			influence = 0.15
		}
		if influence < -0.15 {
			influence = -0.15
		}
		min = int(float64(min)*(1+influence) + 0.5)
		max = int(float64(max)*(1+influence) + 0.5)
		if min > max {
			min = max - 1
		}
	}

	return fmt.Sprintf("₹%d–%d LPA", min, max)
}

func containsAny(s string, keywords ...string) bool {
	lower := strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
