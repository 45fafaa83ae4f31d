package steps

import (
	"testing"
	"time"
)

func TestParseSectorKey(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"5a", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseSectorKey(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseSectorKey(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	type rec struct {
		Code  string
		Title string
	}
	a := fingerprint(rec{Code: "EC0249", Title: "one"})
	b := fingerprint(rec{Code: "EC0249", Title: "one"})
	c := fingerprint(rec{Code: "EC0249", Title: "two"})

	if a != b {
		t.Fatalf("identical input produced different fingerprints: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("different input produced the same fingerprint: %s", a)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestTimeFromEpochMillis(t *testing.T) {
	if got := timeFromEpochMillis(0); got != nil {
		t.Fatalf("expected nil for zero epoch, got %v", got)
	}
	if got := timeFromEpochMillis(-5); got != nil {
		t.Fatalf("expected nil for negative epoch, got %v", got)
	}

	got := timeFromEpochMillis(1136214245000)
	if got == nil {
		t.Fatal("expected non-nil time")
	}
	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
}

func TestBatchSizeOrDefault(t *testing.T) {
	if got := batchSizeOrDefault(0); got != defaultBatchSize {
		t.Fatalf("got %d, want %d", got, defaultBatchSize)
	}
	if got := batchSizeOrDefault(-1); got != defaultBatchSize {
		t.Fatalf("got %d, want %d", got, defaultBatchSize)
	}
	if got := batchSizeOrDefault(25); got != 25 {
		t.Fatalf("got %d, want 25", got)
	}
}
