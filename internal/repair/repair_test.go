package repair

import (
	"testing"

	"github.com/danmuck/reportctl/internal/report"
	"github.com/danmuck/reportctl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func TestLiteralReportsBothStrategies(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		in   report.Report
		want bool
	}{
		{"already decreasing", report.Report{7, 6, 4, 2, 1}, true},
		{"drop inner rise", report.Report{1, 3, 2, 4, 5}, true},
		{"single wide step", report.Report{1, 2, 7, 8, 9}, false},
		{"single wide fall", report.Report{9, 7, 6, 2, 1}, false},
		{"single flat step", report.Report{8, 6, 4, 4, 1}, true},
	}
	for _, tc := range cases {
		if got := Exhaustive(tc.in); got != tc.want {
			t.Fatalf("%s: Exhaustive(%v)=%v want %v", tc.name, tc.in, got, tc.want)
		}
		if got := Heuristic(tc.in); got != tc.want {
			t.Fatalf("%s: Heuristic(%v)=%v want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestHeuristicRepairsAtEveryPosition(t *testing.T) {
	testlog.Start(t)
	cases := []report.Report{
		{1, 6, 4, 2, 1},
		{8, 6, 4, 2, 4},
		{8, 6, 4, 6, 1},
		{19, 20, 21, 22, 23, 25, 26, 30},
		{30, 26, 25, 23, 22, 21, 20, 19},
		{26, 25, 23, 30, 22, 21, 20, 19},
		{26, 25, 23, 22, 21, 20, 30, 19},
		{48, 46, 47, 49, 51, 54, 56},
		{1, 1, 2, 3, 4, 5},
		{1, 2, 3, 4, 5, 5},
		{5, 1, 2, 3, 4, 5},
		{1, 4, 3, 2, 1},
		{1, 6, 7, 8, 9},
		{1, 2, 3, 4, 3},
		{9, 8, 7, 6, 7},
		{7, 10, 8, 10, 11},
		{29, 28, 27, 25, 26, 25, 22, 20},
		{8, 9, 10, 11},
	}
	for _, r := range cases {
		if !Heuristic(r) {
			t.Fatalf("expected heuristic to repair %v", r)
		}
		if !Exhaustive(r) {
			t.Fatalf("expected exhaustive to repair %v", r)
		}
	}
}

func TestEmptyAndSingletonAreRepairable(t *testing.T) {
	testlog.Start(t)
	for _, r := range []report.Report{nil, {}, {3}} {
		if !Exhaustive(r) || !Heuristic(r) {
			t.Fatalf("expected %v to be repairable by both strategies", r)
		}
	}
}

func TestDiagnoseSingleZeroDiff(t *testing.T) {
	testlog.Start(t)
	diag := Diagnose(report.Report{8, 6, 4, 4, 1})
	if diag.Valid {
		t.Fatalf("expected invalid report")
	}
	want := Tally{Negative: 3, Positive: 0, Zero: 1, OutOfBounds: 0}
	if diff := cmp.Diff(want, diag.Tally); diff != "" {
		t.Fatalf("tally mismatch (-want +got):\n%s", diff)
	}
	if diag.Category != CategoryZero || diag.Anomaly != 2 {
		t.Fatalf("unexpected anomaly: category=%s index=%d", diag.Category, diag.Anomaly)
	}
	if diff := cmp.Diff([]int{2, 3}, diag.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnoseOverlappingCategories(t *testing.T) {
	testlog.Start(t)
	// -4 counts as both negative and out-of-bounds; negative has four
	// members so out-of-bounds wins.
	diag := Diagnose(report.Report{9, 7, 6, 2, 1})
	want := Tally{Negative: 4, OutOfBounds: 1}
	if diff := cmp.Diff(want, diag.Tally); diff != "" {
		t.Fatalf("tally mismatch (-want +got):\n%s", diff)
	}
	if diag.Category != CategoryOutOfBounds || diag.Anomaly != 2 {
		t.Fatalf("unexpected anomaly: category=%s index=%d", diag.Category, diag.Anomaly)
	}
}

func TestDiagnoseNoSingleCategory(t *testing.T) {
	testlog.Start(t)
	diag := Diagnose(report.Report{1, 1, 1})
	if diag.Anomaly != -1 || diag.Category != CategoryNone {
		t.Fatalf("expected no anomaly, got category=%s index=%d", diag.Category, diag.Anomaly)
	}
	if diag.Candidates() != nil {
		t.Fatalf("expected no candidates, got %v", diag.Candidates())
	}
	if Heuristic(report.Report{1, 1, 1}) {
		t.Fatalf("expected heuristic to give up")
	}
}

func TestDiagnoseValidReport(t *testing.T) {
	testlog.Start(t)
	diag := Diagnose(report.Report{1, 2, 3})
	if !diag.Valid || diag.Anomaly != -1 || diag.Tally != (Tally{}) {
		t.Fatalf("unexpected diagnosis for valid report: %+v", diag)
	}
}

// The single out-of-bounds diff is located by magnitude, not by the first
// diff outside [1, 3], so a decreasing report points at the -4 step.
func TestDiagnoseOutOfBoundsInDecreasingReport(t *testing.T) {
	testlog.Start(t)
	r := report.Report{9, 8, 7, 3}
	diag := Diagnose(r)
	want := Tally{Negative: 3, OutOfBounds: 1}
	if diff := cmp.Diff(want, diag.Tally); diff != "" {
		t.Fatalf("tally mismatch (-want +got):\n%s", diff)
	}
	if diag.Category != CategoryOutOfBounds || diag.Anomaly != 2 {
		t.Fatalf("unexpected anomaly: category=%s index=%d", diag.Category, diag.Anomaly)
	}
	if diff := cmp.Diff([]int{2, 3}, diag.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	if !Heuristic(r) || !Exhaustive(r) {
		t.Fatalf("expected both strategies to repair %v", r)
	}
}

// The heuristic only looks next to the anomaly. Here the single negative
// diff sits at index 1, but the fix is dropping element 0.
func TestKnownDivergenceExhaustiveIsAuthoritative(t *testing.T) {
	testlog.Start(t)
	r := report.Report{0, 10, 9}
	if Heuristic(r) {
		t.Fatalf("expected heuristic to miss %v", r)
	}
	if !Exhaustive(r) {
		t.Fatalf("expected exhaustive to repair %v", r)
	}
	if diff := cmp.Diff([]int{0}, RemovalIndices(r)); diff != "" {
		t.Fatalf("removal indices mismatch (-want +got):\n%s", diff)
	}
	diag := Diagnose(r)
	if diag.Category != CategoryNegative || diag.Anomaly != 1 {
		t.Fatalf("unexpected anomaly: category=%s index=%d", diag.Category, diag.Anomaly)
	}
}

func TestRemovalIndicesOnUnrepairable(t *testing.T) {
	testlog.Start(t)
	if got := RemovalIndices(report.Report{1, 2, 7, 8, 9}); len(got) != 0 {
		t.Fatalf("expected no removal indices, got %v", got)
	}
}
