package gemini

import "strings"

// ParseQuestionList extracts questions from a model response formatted as a
// numbered or bulleted list. Headings, commentary and empty lines are
// dropped; list markers are stripped.
func ParseQuestionList(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		question, ok := stripListMarker(line)
		if !ok {
			continue
		}
		if question != "" {
			questions = append(questions, question)
		}
	}
	return questions
}

// stripListMarker removes a leading bullet or number marker. Lines without a
// marker are not list items and are ignored.
func stripListMarker(line string) (string, bool) {
	for _, bullet := range []string{"-", "•", "*"} {
		if strings.HasPrefix(line, bullet) {
			return strings.TrimSpace(strings.TrimPrefix(line, bullet)), true
		}
	}

	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return "", false
	}

	rest := line[digits:]
	for _, sep := range []string{".", ")"} {
		if strings.HasPrefix(rest, sep) {
			return strings.TrimSpace(strings.TrimPrefix(rest, sep)), true
		}
	}
	return "", false
}
