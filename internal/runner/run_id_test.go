package runner

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestFormatRunID verifies run ID formatting.
func TestFormatRunID(t *testing.T) {
	timestamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := FormatRunID(timestamp, "deadbeef")
	if got != "20240102T030405Z-deadbeef" {
		t.Fatalf("unexpected run id: %q", got)
	}
}

// TestNewRunIDWithRand verifies deterministic run ID generation with a reader.
func TestNewRunIDWithRand(t *testing.T) {
	timestamp := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	reader := bytes.NewReader(bytes.Repeat([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}, 2))
	got, err := NewRunIDWithRand(timestamp, reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "20240607T080910Z-001122334455" {
		t.Fatalf("unexpected run id: %q", got)
	}
}

// TestNewRunIDShortReader verifies a short random source is an error.
func TestNewRunIDShortReader(t *testing.T) {
	_, err := NewRunIDWithRand(time.Now(), bytes.NewReader([]byte{0x01}))
	if err == nil || !strings.Contains(err.Error(), "random") {
		t.Fatalf("expected random read error, got %v", err)
	}
	if _, err := NewRunIDWithRand(time.Now(), nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

// TestNewRunIDUnique verifies two generated IDs differ.
func TestNewRunIDUnique(t *testing.T) {
	first, err := NewRunID()
	if err != nil {
		t.Fatalf("new run id: %v", err)
	}
	second, err := NewRunID()
	if err != nil {
		t.Fatalf("new run id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct run ids, got %q twice", first)
	}
}
