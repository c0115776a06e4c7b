package recruit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EmployeeRecord is one row from the employee record source. Only rows with
// a departure date spawn job openings.
type EmployeeRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name,omitempty"`
	Position      string  `json:"position"`
	Department    string  `json:"department"`
	Salary        float64 `json:"salary,omitempty"`
	DepartureDate string  `json:"departure_date,omitempty"`
}

// Departed reports whether the employee record shows a departure date.
func (e EmployeeRecord) Departed() bool {
	return strings.TrimSpace(e.DepartureDate) != ""
}

// LoadEmployees reads employee rows from a CSV file with a header row.
// Recognized columns: id, name, position, department, salary,
// last_working_day. Unknown columns are ignored; missing optional values are
// left zero.
func LoadEmployees(path string) ([]EmployeeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening employees file: %w", err)
	}
	defer f.Close()

	return ReadEmployees(f)
}

// ReadEmployees parses employee CSV rows from the reader.
func ReadEmployees(r io.Reader) ([]EmployeeRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading employees header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["id"]; !ok {
		return nil, fmt.Errorf("employees file has no id column")
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var employees []EmployeeRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading employees row: %w", err)
		}

		emp := EmployeeRecord{
			ID:            field(row, "id"),
			Name:          field(row, "name"),
			Position:      field(row, "position"),
			Department:    field(row, "department"),
			DepartureDate: field(row, "last_working_day"),
		}
		if raw := field(row, "salary"); raw != "" {
			if salary, err := strconv.ParseFloat(raw, 64); err == nil {
				emp.Salary = salary
			}
		}
		if emp.ID == "" {
			continue
		}
		employees = append(employees, emp)
	}

	return employees, nil
}
