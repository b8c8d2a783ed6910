package directory

import "projectai/internal/intake"

// User is a read-only roster profile.
type User struct {
	ID                  string  `json:"user_id"`
	Name                string  `json:"name"`
	Role                string  `json:"role"`
	ProjectHistoryCount int     `json:"project_history_count"`
	ExperienceYears     int     `json:"experience_years"`
	AverageSuccessRate  float64 `json:"average_success_rate"`
}

// IntakeUser projects the profile onto what the intake flow greets and prompts with.
func (u User) IntakeUser() *intake.User {
	return &intake.User{
		ID:              u.ID,
		Name:            u.Name,
		Role:            u.Role,
		ExperienceYears: u.ExperienceYears,
	}
}
