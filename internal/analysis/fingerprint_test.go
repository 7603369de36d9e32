package analysis

import (
	"strings"
	"testing"
)

func TestFingerprintStableAcrossWhitespaceAndCase(t *testing.T) {
	a := Fingerprint("offer_letter", "Dear  Jane Doe,\n\nWelcome to Example University.")
	b := Fingerprint("offer_letter", "dear jane doe, welcome to example university.")
	if a != b {
		t.Fatalf("expected normalized texts to share a fingerprint")
	}
}

func TestFingerprintIgnoresMiddleOfLongDocuments(t *testing.T) {
	head := strings.Repeat("h", 400)
	tail := strings.Repeat("t", 400)
	a := Fingerprint("offer_letter", head+" middle-one "+tail)
	b := Fingerprint("offer_letter", head+" middle-two "+tail)
	if a != b {
		t.Fatalf("expected differences confined to the middle to share a fingerprint")
	}
}

func TestFingerprintVariesByDocumentType(t *testing.T) {
	text := "Confirmation of Enrollment for Jane Doe at Example University."
	if Fingerprint("coe", text) == Fingerprint("offer_letter", text) {
		t.Fatalf("expected document type to change the fingerprint")
	}
}

func TestFingerprintVariesByHead(t *testing.T) {
	tail := strings.Repeat("t", 400)
	a := Fingerprint("coe", "first document "+tail)
	b := Fingerprint("coe", "second document "+tail)
	if a == b {
		t.Fatalf("expected different heads to produce different fingerprints")
	}
}
