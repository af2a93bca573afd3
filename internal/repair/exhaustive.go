package repair

import "github.com/danmuck/reportctl/internal/report"

// Strategy answers whether a report is valid or valid after one removal.
type Strategy func(report.Report) bool

// Exhaustive tries every single-element removal.
func Exhaustive(r report.Report) bool {
	if report.IsValid(r) {
		return true
	}
	for k := range r {
		if report.IsValid(r.Without(k)) {
			return true
		}
	}
	return false
}

// RemovalIndices lists every k whose removal leaves a valid report.
func RemovalIndices(r report.Report) []int {
	var out []int
	for k := range r {
		if report.IsValid(r.Without(k)) {
			out = append(out, k)
		}
	}
	return out
}
