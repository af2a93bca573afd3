package report

// IsValid reports whether s is strictly monotonic with every step magnitude
// in [MinStep, MaxStep]. Sequences of length 0 or 1 are valid.
func IsValid(s Sequence) bool {
	n := s.Len()
	if n < 2 {
		return true
	}
	dir := int64(0)
	for i := 1; i < n; i++ {
		d := int64(s.At(i)) - int64(s.At(i-1))
		if !InBounds(d) {
			return false
		}
		sign := int64(1)
		if d < 0 {
			sign = -1
		}
		if dir == 0 {
			dir = sign
			continue
		}
		if sign != dir {
			return false
		}
	}
	return true
}

// InBounds reports whether MinStep <= |d| <= MaxStep.
func InBounds(d int64) bool {
	if d < 0 {
		d = -d
	}
	return d >= MinStep && d <= MaxStep
}

// Valid applies the validity rule directly to a diff sequence.
func (d Diffs) Valid() bool {
	if len(d) == 0 {
		return true
	}
	increasing, decreasing := true, true
	for _, v := range d {
		if !InBounds(v) {
			return false
		}
		if v <= 0 {
			increasing = false
		}
		if v >= 0 {
			decreasing = false
		}
	}
	return increasing || decreasing
}
