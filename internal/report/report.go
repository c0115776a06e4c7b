// Package report renders and persists the durable artifacts of a
// recruitment run: the opening analysis in Markdown and the summary in JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/recruitpipe/recruitpipe/internal/recruit"
)

// RenderAnalysis produces the Markdown recruitment analysis for the
// identified openings.
func RenderAnalysis(openings map[string]*recruit.JobOpening) string {
	if len(openings) == 0 {
		return "No recruitment needs identified.\n"
	}

	ids := make([]string, 0, len(openings))
	for id := range openings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("# Recruitment Analysis Report\n\n")
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "Total job openings: %d\n\n", len(openings))
	b.WriteString("## Job Openings\n")

	for _, id := range ids {
		opening := openings[id]
		fmt.Fprintf(&b, "\n### %s - %s\n", opening.Title, opening.Department)
		fmt.Fprintf(&b, "- **Departed employee**: %s (ID: %s)\n", opening.EmployeeName, opening.SourceEmployeeID)
		if opening.LastWorkingDay != "" {
			fmt.Fprintf(&b, "- **Last working day**: %s\n", opening.LastWorkingDay)
		}
		fmt.Fprintf(&b, "- **Salary range**: %s\n", opening.SalaryRange)
		fmt.Fprintf(&b, "- **Priority**: %s\n", opening.Priority)
		fmt.Fprintf(&b, "- **Experience required**: %d-%d years\n", opening.ExperienceMin, opening.ExperienceMax)
		fmt.Fprintf(&b, "- **Status**: %s\n", opening.Status)

		if len(opening.RequiredSkills) > 0 {
			b.WriteString("\n#### Required Skills\n")
			for _, skill := range opening.RequiredSkills {
				fmt.Fprintf(&b, "- %s\n", skill)
			}
		}

		if opening.Description != "" {
			b.WriteString("\n#### Job Description\n")
			b.WriteString(opening.Description)
			b.WriteString("\n")
		}

		for _, warning := range opening.Warnings {
			fmt.Fprintf(&b, "\n> Warning: %s\n", warning)
		}

		b.WriteString("\n---\n")
	}

	return b.String()
}

// Save writes the content into the reports directory, creating it when
// missing, and returns the full path of the written file.
func Save(dir, filename string, content []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", filename, err)
	}
	return path, nil
}

// SaveAnalysis persists the Markdown analysis of the openings.
func SaveAnalysis(dir string, openings map[string]*recruit.JobOpening) (string, error) {
	return Save(dir, "recruitment_analysis.md", []byte(RenderAnalysis(openings)))
}

// SaveSummary persists the summary artifact as indented JSON.
func SaveSummary(dir string, summary *recruit.Summary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	return Save(dir, "recruitment_summary.json", data)
}
