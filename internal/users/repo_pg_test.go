package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertNullsEmptyProfileFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("google:123", "jane@example.com", "Jane Doe", nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := User{ID: "google:123", Email: "jane@example.com", FullName: "Jane Doe"}
	if err := repo.Upsert(context.Background(), user); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	columns := []string{"id", "email", "full_name", "given_name", "family_name", "picture_url", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT id, email, full_name").
		WithArgs("google:123").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("google:123", "jane@example.com", "Jane Doe", nil, nil, nil, now, now))

	user, err := repo.GetByID(context.Background(), "google:123")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.FullName != "Jane Doe" {
		t.Fatalf("FullName = %q", user.FullName)
	}
	if user.GivenName != "" || user.PictureURL != "" {
		t.Fatalf("NULL columns not mapped to empty strings: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	columns := []string{"id", "email", "full_name", "given_name", "family_name", "picture_url", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT id, email, full_name").
		WithArgs("google:missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetByID(context.Background(), "google:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
