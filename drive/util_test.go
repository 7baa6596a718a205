package drive

import "testing"

func TestFormatSize(t *testing.T) {
	if got := formatSize(0, false); got != "" {
		t.Fatalf("zero size should be blank, got '%s'", got)
	}

	if got := formatSize(1234, true); got != "1234 B" {
		t.Fatalf("expected '1234 B', got '%s'", got)
	}

	if got := formatSize(2500000, false); got != "2.5 MB" {
		t.Fatalf("expected '2.5 MB', got '%s'", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 9); got != "short" {
		t.Fatalf("short string should be untouched, got '%s'", got)
	}

	got := truncateString("abcdefghijklmnopqrstuvwxyz", 12)
	if len(got) != 12 {
		t.Fatalf("expected 12 runes, got %d ('%s')", len(got), got)
	}
}
