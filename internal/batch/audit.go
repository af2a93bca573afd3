package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/reportctl/internal/observability"
	"github.com/danmuck/reportctl/internal/repair"
	"github.com/danmuck/reportctl/internal/report"
	"github.com/rs/zerolog/log"
)

var ErrFalsePositive = errors.New("batch: heuristic repaired a report exhaustive search rejects")

// Divergence is one report where the strategies disagree.
type Divergence struct {
	Index      int
	Report     report.Report
	Heuristic  bool
	Exhaustive bool
	Diagnosis  repair.Diagnosis
}

// AuditResult lists divergences in input order.
type AuditResult struct {
	Total       int
	Divergences []Divergence
}

// Audit runs both strategies on every report and collects disagreements.
// The exhaustive answer is authoritative.
func Audit(ctx context.Context, reports []report.Report, workers int) (AuditResult, error) {
	start := time.Now()
	found := make([]*Divergence, len(reports))
	err := forEach(ctx, len(reports), workers, func(i int) error {
		r := reports[i]
		h := repair.Heuristic(r)
		e := repair.Exhaustive(r)
		if h == e {
			return nil
		}
		if h && !e {
			return fmt.Errorf("%w: index %d report %v", ErrFalsePositive, i, r)
		}
		found[i] = &Divergence{
			Index:      i,
			Report:     r,
			Heuristic:  h,
			Exhaustive: e,
			Diagnosis:  repair.Diagnose(r),
		}
		return nil
	})
	if err != nil {
		return AuditResult{}, err
	}

	res := AuditResult{Total: len(reports)}
	for _, d := range found {
		if d == nil {
			continue
		}
		res.Divergences = append(res.Divergences, *d)
		observability.RecordDivergence()
	}
	observability.RecordBatch(CommandAudit, time.Since(start))
	log.Debug().
		Int("reports", res.Total).
		Int("divergences", len(res.Divergences)).
		Msg("audit complete")
	return res, nil
}
