package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header names accepted for each roster column, Portuguese or English.
var columnAliases = map[string]string{
	"usuario_id":            "user_id",
	"user_id":               "user_id",
	"id":                    "user_id",
	"nome":                  "name",
	"name":                  "name",
	"cargo":                 "role",
	"role":                  "role",
	"historico_projetos":    "project_history_count",
	"project_history":       "project_history_count",
	"project_history_count": "project_history_count",
	"experiencia_anos":      "experience_years",
	"experience_years":      "experience_years",
	"sucesso_medio":         "average_success_rate",
	"average_success_rate":  "average_success_rate",
}

var requiredColumns = []string{"user_id", "name"}

// LoadCSV reads a roster file into a MemoryRepo.
func LoadCSV(path string) (*MemoryRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	users, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewMemoryRepo(users...), nil
}

// ParseCSV decodes roster rows. Blank lines are skipped; numeric columns may be empty.
func ParseCSV(r io.Reader) ([]User, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("roster is empty")
		}
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if canonical, ok := columnAliases[name]; ok {
			index[canonical] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("roster header missing %s column", col)
		}
	}

	var users []User
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		u := User{ID: get("user_id"), Name: get("name"), Role: get("role")}
		if u.ID == "" {
			continue
		}
		if u.ProjectHistoryCount, err = atoiOrZero(get("project_history_count")); err != nil {
			return nil, fmt.Errorf("line %d: project history: %w", line, err)
		}
		if u.ExperienceYears, err = atoiOrZero(get("experience_years")); err != nil {
			return nil, fmt.Errorf("line %d: experience years: %w", line, err)
		}
		if raw := strings.ReplaceAll(get("average_success_rate"), ",", "."); raw != "" {
			if u.AverageSuccessRate, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("line %d: success rate: %w", line, err)
			}
		}
		users = append(users, u)
	}
	return users, nil
}

func atoiOrZero(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
