package directory

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const selectUsers = `
SELECT user_id, name, role, project_history_count, experience_years, average_success_rate
FROM project_users`

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	row := r.DB.QueryRowContext(ctx, selectUsers+`
WHERE user_id = $1
LIMIT 1`, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// List orders numeric ids numerically so a roster of "1".."10" lists naturally.
func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, selectUsers+`
ORDER BY length(user_id), user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (User, error) {
	var user User
	var role sql.NullString
	err := s.Scan(
		&user.ID,
		&user.Name,
		&role,
		&user.ProjectHistoryCount,
		&user.ExperienceYears,
		&user.AverageSuccessRate,
	)
	if err != nil {
		return User{}, err
	}
	if role.Valid {
		user.Role = role.String
	}
	return user, nil
}
