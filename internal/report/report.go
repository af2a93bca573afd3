package report

const (
	MinStep = 1
	MaxStep = 3
)

// Sequence is the read-only view the validator walks.
type Sequence interface {
	Len() int
	At(i int) int32
}

// Report is one ordered line of readings. Reports are never edited in place.
type Report []int32

// Diffs holds consecutive differences of a report, widened to int64.
type Diffs []int64

func (r Report) Len() int {
	return len(r)
}

func (r Report) At(i int) int32 {
	return r[i]
}

// Diffs returns D[i] = R[i+1] - R[i]. Reports shorter than two yield nil.
func (r Report) Diffs() Diffs {
	return DiffsOf(r)
}

// Valid reports whether r satisfies the validity rule as-is.
func (r Report) Valid() bool {
	return IsValid(r)
}

// Without returns r viewed with element k skipped.
func (r Report) Without(k int) View {
	return View{base: r, skip: k}
}

// Remove returns a fresh copy of r with element k dropped. Out-of-range k
// returns an unmodified copy.
func (r Report) Remove(k int) Report {
	out := make(Report, 0, len(r))
	for i, v := range r {
		if i == k {
			continue
		}
		out = append(out, v)
	}
	return out
}

// View is an index-skipping window over a report.
type View struct {
	base Report
	skip int
}

func (v View) Len() int {
	if v.skip < 0 || v.skip >= len(v.base) {
		return len(v.base)
	}
	return len(v.base) - 1
}

func (v View) At(i int) int32 {
	if v.skip >= 0 && i >= v.skip {
		return v.base[i+1]
	}
	return v.base[i]
}

// Materialize copies the view into a standalone report.
func (v View) Materialize() Report {
	out := make(Report, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// DiffsOf computes the diff sequence of any sequence.
func DiffsOf(s Sequence) Diffs {
	n := s.Len()
	if n < 2 {
		return nil
	}
	out := make(Diffs, n-1)
	for i := 1; i < n; i++ {
		out[i-1] = int64(s.At(i)) - int64(s.At(i-1))
	}
	return out
}
