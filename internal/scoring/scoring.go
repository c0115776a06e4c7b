// Package scoring implements the pure scoring engine of the hiring pipeline:
// skill, experience and cultural-fit sub-scores, the weighted composite, the
// recommendation tiers and the interview feedback heuristic. All functions
// are deterministic and side-effect free; invalid inputs degrade the affected
// sub-score to zero instead of failing.
package scoring

import (
	"strings"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// Composite weights. Fixed configuration: w1+w2+w3 = 1.
const (
	WeightSkills     = 0.4
	WeightExperience = 0.3
	WeightCultural   = 0.3
)

// Recommendation tier thresholds over the overall score.
const (
	TierStrongFit = 85.0
	TierFit       = 70.0
	TierWeak      = 50.0
)

// DefaultHireThreshold is the final score at or above which the top-ranked
// candidate for an opening is hired.
const DefaultHireThreshold = 70.0

// defaultDecayYears bounds the experience decay window when the required
// minimum is too small to serve as one.
const defaultDecayYears = 3

// SkillAnalysis is the detailed outcome of matching required skills against
// a resume.
type SkillAnalysis struct {
	Ratio   float64
	Matched []string
	Missing []string
}

// AnalyzeSkills matches each required skill against the resume text with a
// case-insensitive substring check. The ratio is matched over total required;
// an empty required set carries no penalty and scores 1.0. An empty resume
// degrades the ratio to 0 (unless nothing is required).
func AnalyzeSkills(required []string, resumeText string) SkillAnalysis {
	if len(required) == 0 {
		return SkillAnalysis{Ratio: 1.0}
	}

	analysis := SkillAnalysis{}
	resume := strings.ToLower(resumeText)
	if strings.TrimSpace(resume) == "" {
		analysis.Missing = append(analysis.Missing, required...)
		return analysis
	}

	for _, skill := range required {
		if strings.Contains(resume, strings.ToLower(skill)) {
			analysis.Matched = append(analysis.Matched, skill)
		} else {
			analysis.Missing = append(analysis.Missing, skill)
		}
	}

	analysis.Ratio = float64(len(analysis.Matched)) / float64(len(required))
	return analysis
}

// SkillMatch is the ratio-only form of AnalyzeSkills.
func SkillMatch(required []string, resumeText string) float64 {
	return AnalyzeSkills(required, resumeText).Ratio
}

// ExperienceMatch scores candidate experience against the required range.
// Years within [min,max] score 1.0. Outside the range the score decays
// linearly to 0 over a window of max(min, 3) years; the same window applies
// to under- and over-qualified candidates, so the policy is symmetric and
// monotonic in the distance from the range. Negative years are invalid and
// score 0.
func ExperienceMatch(requiredMin, requiredMax, years int) float64 {
	if years < 0 {
		return 0
	}
	if requiredMax < requiredMin {
		requiredMin, requiredMax = requiredMax, requiredMin
	}
	if years >= requiredMin && years <= requiredMax {
		return 1.0
	}

	window := requiredMin
	if window < defaultDecayYears {
		window = defaultDecayYears
	}

	var distance int
	if years < requiredMin {
		distance = requiredMin - years
	} else {
		distance = years - requiredMax
	}
	if distance >= window {
		return 0
	}
	return 1.0 - float64(distance)/float64(window)
}

// culturalIndicators are the signal keyword groups used to estimate cultural
// fit from application text. Each category scores min(100, 20*hits); the fit
// score is the category average.
var culturalIndicators = map[string][]string{
	"teamwork":      {"team", "collaboration", "cooperation", "partnership"},
	"leadership":    {"lead", "manage", "supervise", "mentor", "guide"},
	"innovation":    {"innovate", "creative", "problem-solving", "improve"},
	"communication": {"communicate", "present", "write", "speak", "explain"},
	"adaptability":  {"adapt", "flexible", "change", "learn", "grow"},
}

// CulturalFit estimates a [0,100] cultural-fit score from the cover letter
// and resume text.
func CulturalFit(coverLetter, resumeText string) float64 {
	combined := strings.ToLower(coverLetter + " " + resumeText)

	total := 0.0
	for _, keywords := range culturalIndicators {
		hits := 0
		for _, keyword := range keywords {
			if strings.Contains(combined, keyword) {
				hits++
			}
		}
		score := float64(hits * 20)
		if score > 100 {
			score = 100
		}
		total += score
	}
	return total / float64(len(culturalIndicators))
}

// Composite combines the sub-scores into the overall [0,100] score:
// 0.4*skill*100 + 0.3*experience*100 + 0.3*cultural. The result is clamped
// to [0,100].
func Composite(skillRatio, experienceRatio, culturalFit float64) float64 {
	score := WeightSkills*skillRatio*100 + WeightExperience*experienceRatio*100 + WeightCultural*culturalFit
	return clamp(score, 0, 100)
}

// Tier maps an overall score onto a recommendation.
func Tier(overall float64) recruit.Recommendation {
	switch {
	case overall >= TierStrongFit:
		return recruit.RecommendStrongFit
	case overall >= TierFit:
		return recruit.RecommendFit
	case overall >= TierWeak:
		return recruit.RecommendWeak
	default:
		return recruit.RecommendReject
	}
}

// stageIndicators are the per-stage signal keywords used to derive a stage
// score from interviewer feedback, with the same presence-ratio mechanism as
// skill matching.
var stageIndicators = map[recruit.InterviewStage][]string{
	recruit.StageTechnical: {
		"strong", "solid", "technical", "problem-solving", "design",
		"architecture", "code", "debug", "testing", "depth",
	},
	recruit.StageBehavioral: {
		"communication", "team", "leadership", "collaboration", "motivated",
		"growth", "adaptable", "attitude", "clear", "potential",
	},
}

// FeedbackScore derives a [0,100] stage score from the interviewer feedback:
// the ratio of per-stage indicator keywords present in the text, scaled to
// 100. Empty feedback scores 0.
func FeedbackScore(stage recruit.InterviewStage, feedback string) float64 {
	text := strings.ToLower(strings.TrimSpace(feedback))
	if text == "" {
		return 0
	}

	indicators := stageIndicators[stage]
	if len(indicators) == 0 {
		return 0
	}

	hits := 0
	for _, keyword := range indicators {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return float64(hits) / float64(len(indicators)) * 100
}

// FinalScore averages the screening overall score with every interview stage
// score, each carrying equal weight.
func FinalScore(overall float64, stageScores []float64) float64 {
	total := overall
	for _, score := range stageScores {
		total += score
	}
	return clamp(total/float64(1+len(stageScores)), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
