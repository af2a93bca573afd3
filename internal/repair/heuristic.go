package repair

import "github.com/danmuck/reportctl/internal/report"

// Category is a diff classification used to locate the anomaly.
type Category int

const (
	CategoryNone Category = iota
	CategoryNegative
	CategoryPositive
	CategoryZero
	CategoryOutOfBounds
)

// priority is the order in which a single-diff category wins.
var priority = [...]Category{
	CategoryNegative,
	CategoryPositive,
	CategoryZero,
	CategoryOutOfBounds,
}

func (c Category) String() string {
	switch c {
	case CategoryNegative:
		return "negative"
	case CategoryPositive:
		return "positive"
	case CategoryZero:
		return "zero"
	case CategoryOutOfBounds:
		return "out-of-bounds"
	default:
		return "none"
	}
}

// matches reports whether d falls in c. Categories overlap: a diff of -5 is
// both negative and out-of-bounds.
func (c Category) matches(d int64) bool {
	switch c {
	case CategoryNegative:
		return d < 0
	case CategoryPositive:
		return d > 0
	case CategoryZero:
		return d == 0
	case CategoryOutOfBounds:
		return d > report.MaxStep || d < -report.MaxStep
	default:
		return false
	}
}

// Tally holds four independent counts over a diff sequence.
type Tally struct {
	Negative    int
	Positive    int
	Zero        int
	OutOfBounds int
}

func (t Tally) count(c Category) int {
	switch c {
	case CategoryNegative:
		return t.Negative
	case CategoryPositive:
		return t.Positive
	case CategoryZero:
		return t.Zero
	case CategoryOutOfBounds:
		return t.OutOfBounds
	default:
		return 0
	}
}

// Diagnosis is the heuristic's reading of why a report failed.
type Diagnosis struct {
	Diffs    report.Diffs
	Valid    bool
	Tally    Tally
	Category Category
	// Anomaly indexes Diffs; -1 when no category has exactly one member.
	Anomaly int
}

// Candidates returns the report indices the heuristic will try removing.
func (d Diagnosis) Candidates() []int {
	if d.Valid || d.Anomaly < 0 {
		return nil
	}
	return []int{d.Anomaly, d.Anomaly + 1}
}

// Diagnose classifies the diffs of r and picks the anomaly index.
func Diagnose(r report.Report) Diagnosis {
	diffs := r.Diffs()
	out := Diagnosis{Diffs: diffs, Valid: diffs.Valid(), Anomaly: -1}
	if out.Valid {
		return out
	}
	out.Tally = tally(diffs)
	for _, c := range priority {
		if out.Tally.count(c) != 1 {
			continue
		}
		out.Category = c
		out.Anomaly = firstMatch(diffs, c)
		break
	}
	return out
}

// Heuristic proposes at most two removals around the diagnosed anomaly.
func Heuristic(r report.Report) bool {
	diag := Diagnose(r)
	if diag.Valid {
		return true
	}
	for _, k := range diag.Candidates() {
		if report.IsValid(r.Without(k)) {
			return true
		}
	}
	return false
}

func tally(diffs report.Diffs) Tally {
	var t Tally
	for _, d := range diffs {
		if CategoryNegative.matches(d) {
			t.Negative++
		}
		if CategoryPositive.matches(d) {
			t.Positive++
		}
		if CategoryZero.matches(d) {
			t.Zero++
		}
		if CategoryOutOfBounds.matches(d) {
			t.OutOfBounds++
		}
	}
	return t
}

func firstMatch(diffs report.Diffs, c Category) int {
	for i, d := range diffs {
		if c.matches(d) {
			return i
		}
	}
	return -1
}
