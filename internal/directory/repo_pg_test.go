package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var userColumns = []string{
	"user_id", "name", "role", "project_history_count", "experience_years", "average_success_rate",
}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT user_id, name, role, .* FROM project_users WHERE user_id = \\$1").
		WithArgs("4").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("4", "Ana Oliveira", "Gerente Sênior", 30, 12, 95.0))

	user, err := repo.GetByID(context.Background(), "4")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Name != "Ana Oliveira" || user.ExperienceYears != 12 || user.AverageSuccessRate != 95 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM project_users").WithArgs("99").WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListHandlesNullRole(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM project_users ORDER BY").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("1", "João Silva", "Gerente de TI", 15, 5, 80.0).
			AddRow("2", "Maria Santos", nil, 10, 3, 65.0))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].Role != "" || users[1].ProjectHistoryCount != 10 {
		t.Fatalf("unexpected second user: %+v", users[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListPropagatesQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM project_users").WillReturnError(errors.New("connection reset"))

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
