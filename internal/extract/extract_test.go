package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const offerDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Letter of Offer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Tuition fee: AUD 68,000</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractTextFromBytes_DocxParagraphs(t *testing.T) {
	data := buildDocx(t, offerDocumentXML)

	text, err := ExtractTextFromBytes(context.Background(), data, mimeDOCX, "offer.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, "Letter of Offer") || !strings.Contains(text, "AUD 68,000") {
		t.Fatalf("extracted text missing content: %q", text)
	}
	if !strings.Contains(text, "Letter of Offer\n") {
		t.Fatalf("paragraph break not preserved: %q", text)
	}
}

func TestExtractTextFromBytes_ZipMimeMappedToDocx(t *testing.T) {
	data := buildDocx(t, offerDocumentXML)

	text, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "offer.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if !strings.Contains(text, "Letter of Offer") {
		t.Fatalf("extracted text missing content: %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_PlainTextPassthrough(t *testing.T) {
	body := "Dear Jane Doe,\n\nWe are pleased to offer you a place at Example University."

	text, err := ExtractTextFromBytes(context.Background(), []byte(body), "text/plain; charset=utf-8", "offer.txt")
	if err != nil {
		t.Fatalf("extract plain text: %v", err)
	}
	if text != body {
		t.Fatalf("text = %q, want payload unchanged", text)
	}
}

func TestExtractTextFromBytes_UnsupportedMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("plain"), "text/csv", "data.csv")
	if err == nil || !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("err = %v, want unsupported mime error", err)
	}
}

type fakeStore struct {
	objects map[string][]byte
	saved   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte), saved: make(map[string]string)}
}

func (s *fakeStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("not used")
}

func (s *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.saved[storageKey] = string(data)
	return int64(len(data)), nil
}

func TestExtractTextPersistsDerivedCopy(t *testing.T) {
	store := newFakeStore()
	store.objects["u1/offer.docx"] = buildDocx(t, offerDocumentXML)

	text, err := ExtractText(context.Background(), store, "u1/offer.docx", mimeDOCX, "offer.docx")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Letter of Offer") {
		t.Fatalf("extracted text missing content: %q", text)
	}

	saved, ok := store.saved["u1/offer.docx.extracted.txt"]
	if !ok {
		t.Fatalf("derived .extracted.txt copy not written; saved keys: %v", store.saved)
	}
	if saved != text {
		t.Fatalf("persisted copy differs from returned text")
	}
}
