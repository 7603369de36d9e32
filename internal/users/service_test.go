package users

import (
	"context"
	"errors"
	"testing"
)

func TestUpsertFromAuthPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())

	first := User{ID: "google:123", Email: "jane@example.com", FullName: "Jane Doe"}
	if err := svc.UpsertFromAuth(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	stored, err := svc.GetByID(ctx, "google:123")
	if err != nil {
		t.Fatalf("get after first upsert: %v", err)
	}

	second := User{ID: "google:123", Email: "jane@example.com", FullName: "Jane D. Doe"}
	if err := svc.UpsertFromAuth(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	updated, err := svc.GetByID(ctx, "google:123")
	if err != nil {
		t.Fatalf("get after second upsert: %v", err)
	}

	if updated.FullName != "Jane D. Doe" {
		t.Fatalf("FullName = %q, want refreshed profile", updated.FullName)
	}
	if !updated.CreatedAt.Equal(stored.CreatedAt) {
		t.Fatalf("CreatedAt changed on re-login: %v -> %v", stored.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt.Before(stored.UpdatedAt) {
		t.Fatalf("UpdatedAt went backwards: %v -> %v", stored.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpsertFromAuthRequiresIDAndEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:123"}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if err := svc.UpsertFromAuth(context.Background(), User{Email: "jane@example.com"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.GetByID(context.Background(), "google:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
