package validate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidCode(t *testing.T) {
	valid := []string{"EC0249", "EC0076.01", "NU1234", "AB0001.99"}
	for _, code := range valid {
		if !ValidCode(code) {
			t.Fatalf("expected %q to be valid", code)
		}
	}

	invalid := []string{
		"",
		"EC249",        // too few digits
		"EC02490",      // too many digits
		"ec0249",       // lowercase prefix
		"E0249",        // one-letter prefix
		"EC0249.1",     // one-digit suffix
		"EC0249.001",   // three-digit suffix
		"EC0249.01.02", // double suffix
		" EC0249",
		"EC0249 ",
	}
	for _, code := range invalid {
		if ValidCode(code) {
			t.Fatalf("expected %q to be invalid", code)
		}
	}
}

func TestCountStatus(t *testing.T) {
	cases := []struct {
		name     string
		actual   int64
		expected int64
		want     Status
	}{
		{"zero always fails", 0, 100, StatusFail},
		{"zero fails even without baseline", 0, 0, StatusFail},
		{"at baseline passes", 100, 100, StatusPass},
		{"above baseline passes", 150, 100, StatusPass},
		{"at threshold passes", 90, 100, StatusPass},
		{"below threshold warns", 89, 100, StatusWarn},
		{"far below warns", 1, 100, StatusWarn},
		{"no baseline passes anything non-zero", 3, 0, StatusPass},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountStatus(tc.actual, tc.expected); got != tc.want {
				t.Fatalf("CountStatus(%d, %d) = %s, want %s", tc.actual, tc.expected, got, tc.want)
			}
		})
	}
}

func TestLoadBaselinesEmbedded(t *testing.T) {
	t.Setenv(baselinesEnv, "")
	b, err := LoadBaselines("")
	if err != nil {
		t.Fatalf("load embedded baselines: %v", err)
	}
	if b.Expected.Standards <= 0 {
		t.Fatalf("embedded baselines missing standards count: %+v", b.Expected)
	}
	if b.Expected.Sectors <= 0 || b.Expected.Certifiers <= 0 {
		t.Fatalf("embedded baselines incomplete: %+v", b.Expected)
	}
}

func TestLoadBaselinesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines.yaml")
	body := "expected:\n  sectors: 3\n  standards: 42\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write baselines: %v", err)
	}

	b, err := LoadBaselines(path)
	if err != nil {
		t.Fatalf("load baselines: %v", err)
	}
	if b.Expected.Sectors != 3 || b.Expected.Standards != 42 {
		t.Fatalf("unexpected baselines: %+v", b.Expected)
	}
	if b.Expected.Centers != 0 {
		t.Fatalf("unset fields should stay zero, got %d", b.Expected.Centers)
	}
}

func TestLoadBaselinesFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("expected:\n  committees: 7\n"), 0o644); err != nil {
		t.Fatalf("write baselines: %v", err)
	}
	t.Setenv(baselinesEnv, path)

	b, err := LoadBaselines("")
	if err != nil {
		t.Fatalf("load baselines: %v", err)
	}
	if b.Expected.Committees != 7 {
		t.Fatalf("expected env baselines to win, got %+v", b.Expected)
	}
}

func TestLoadBaselinesMissingPath(t *testing.T) {
	if _, err := LoadBaselines(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestReportTallyAndFailed(t *testing.T) {
	r := &Report{}
	r.Add(Check{Name: "a", Status: StatusPass})
	r.Add(Check{Name: "b", Status: StatusWarn})
	r.Add(Check{Name: "c", Status: StatusInfo})

	pass, warn, fail := r.Tally()
	if pass != 1 || warn != 1 || fail != 0 {
		t.Fatalf("tally = (%d, %d, %d), want (1, 1, 0)", pass, warn, fail)
	}
	if r.Failed() {
		t.Fatal("report without FAIL checks must not be failed")
	}

	r.Add(Check{Name: "d", Status: StatusFail})
	if !r.Failed() {
		t.Fatal("report with a FAIL check must be failed")
	}
}
