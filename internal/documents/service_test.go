package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type stubStore struct {
	objects map[string]string
	saveErr error
}

func newStubStore() *stubStore {
	return &stubStore{objects: make(map[string]string)}
}

func (s *stubStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	if s.saveErr != nil {
		return "", 0, "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := userID + "/" + fileName
	s.objects[key] = string(data)
	return key, int64(len(data)), "application/pdf", nil
}

func (s *stubStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func TestUploadStoresFileAndRecordsDocument(t *testing.T) {
	store := newStubStore()
	svc := &Service{Store: store, Repo: NewMemoryRepo()}
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "u1", "offer.pdf", "  Offer_Letter  ", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("document ID not assigned")
	}
	if doc.DocumentType != "offer_letter" {
		t.Fatalf("documentType = %q, want normalized lowercase", doc.DocumentType)
	}
	if doc.SizeBytes != int64(len("pdf-bytes")) {
		t.Fatalf("sizeBytes = %d", doc.SizeBytes)
	}
	if _, ok := store.objects[doc.StorageKey]; !ok {
		t.Fatalf("file not written to object store under %q", doc.StorageKey)
	}

	stored, err := svc.Get(ctx, "u1", doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FileName != "offer.pdf" {
		t.Fatalf("stored fileName = %q", stored.FileName)
	}
}

func TestUploadRejectsEmptyFileName(t *testing.T) {
	svc := &Service{Store: newStubStore(), Repo: NewMemoryRepo()}

	_, err := svc.Upload(context.Background(), "u1", "", "offer_letter", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUploadPropagatesStoreFailure(t *testing.T) {
	store := newStubStore()
	store.saveErr = errors.New("disk full")
	svc := &Service{Store: store, Repo: NewMemoryRepo()}

	if _, err := svc.Upload(context.Background(), "u1", "offer.pdf", "offer_letter", strings.NewReader("x")); err == nil {
		t.Fatalf("store failure not surfaced")
	}
}

func TestCurrentReturnsNewestUpload(t *testing.T) {
	svc := &Service{Store: newStubStore(), Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "u1", "first.pdf", "offer_letter", strings.NewReader("a")); err != nil {
		t.Fatalf("upload first: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := svc.Upload(ctx, "u1", "second.pdf", "i20", strings.NewReader("b")); err != nil {
		t.Fatalf("upload second: %v", err)
	}

	doc, err := svc.Current(ctx, "u1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if doc.FileName != "second.pdf" {
		t.Fatalf("current = %q, want the latest upload", doc.FileName)
	}
}

func TestCurrentNotFoundForNewUser(t *testing.T) {
	svc := &Service{Store: newStubStore(), Repo: NewMemoryRepo()}

	_, err := svc.Current(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetScopedToOwner(t *testing.T) {
	svc := &Service{Store: newStubStore(), Repo: NewMemoryRepo()}
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "u1", "offer.pdf", "offer_letter", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := svc.Get(ctx, "u2", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for another user's document", err)
	}
}

func TestListNewestFirstWithPaging(t *testing.T) {
	svc := &Service{Store: newStubStore(), Repo: NewMemoryRepo()}
	ctx := context.Background()

	names := []string{"a.pdf", "b.pdf", "c.pdf"}
	for _, name := range names {
		if _, err := svc.Upload(ctx, "u1", name, "offer_letter", strings.NewReader("x")); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	docs, err := svc.List(ctx, "u1", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("list = %d docs, want limit honored", len(docs))
	}
	if docs[0].FileName != "c.pdf" || docs[1].FileName != "b.pdf" {
		t.Fatalf("order = %q, %q, want newest first", docs[0].FileName, docs[1].FileName)
	}

	rest, err := svc.List(ctx, "u1", 2, 2)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(rest) != 1 || rest[0].FileName != "a.pdf" {
		t.Fatalf("offset page = %+v", rest)
	}
}
