package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateCompletedRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	result := defaultResult("offer_letter")
	now := time.Now().UTC()
	record := Record{
		ID:           "analysis-1",
		DocumentID:   "doc-1",
		UserID:       "user-1",
		DocumentType: "offer_letter",
		Status:       StatusCompleted,
		Result:       &result,
		Metadata:     &Metadata{ProcessingTimeMs: 1234.5, TotalTokensUsed: 200},
		CreatedAt:    now,
		CompletedAt:  &now,
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			record.ID,
			record.DocumentID,
			record.UserID,
			record.DocumentType,
			record.Status,
			sqlmock.AnyArg(), // result jsonb
			sqlmock.AnyArg(), // metadata jsonb
			nil,              // error_code
			nil,              // error_message
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "document_id", "user_id", "document_type", "status",
		"result", "metadata", "error_code", "error_message", "created_at", "completed_at",
	}).AddRow(
		"analysis-1", "doc-1", "user-1", "offer_letter", StatusCompleted,
		`{"documentType":"offer_letter","strategicAnalysis":{"summary":"A strong offer.","analysisScore":78}}`,
		`{"processingTimeMs":1234.5,"totalTokensUsed":200,"cacheHit":false,"degraded":false}`,
		nil, nil, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("analysis-1").
		WillReturnRows(rows)

	record, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if record.Result == nil || record.Result.StrategicAnalysis.Summary != "A strong offer." {
		t.Fatalf("result not decoded: %+v", record.Result)
	}
	if record.Metadata == nil || record.Metadata.TotalTokensUsed != 200 {
		t.Fatalf("metadata not decoded: %+v", record.Metadata)
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
	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
