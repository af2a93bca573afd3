package batch

import (
	"context"
	"time"

	"github.com/danmuck/reportctl/internal/observability"
	"github.com/danmuck/reportctl/internal/repair"
	"github.com/danmuck/reportctl/internal/report"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Summary counts a batch. Valid implies Repairable, so Valid <= Repairable.
type Summary struct {
	Total      int
	Valid      int
	Repairable int
}

const (
	CommandCheck  = "check"
	CommandRepair = "repair"
	CommandAudit  = "audit"
)

// Runner applies one repair strategy to every report of a batch.
type Runner struct {
	// Command labels the batch duration metric; empty means CommandRepair.
	Command      string
	StrategyName string
	Strategy     repair.Strategy
	// Workers <= 1 evaluates inline.
	Workers int
}

type outcome struct {
	valid      bool
	repairable bool
}

// NewRunner returns a runner using the exhaustive strategy.
func NewRunner(workers int) Runner {
	return Runner{
		Command:      CommandRepair,
		StrategyName: repair.NameExhaustive,
		Strategy:     repair.Exhaustive,
		Workers:      workers,
	}
}

// CountRepairable returns how many reports are valid or fixable by one
// removal, using the exhaustive strategy.
func CountRepairable(reports []report.Report) int {
	n := 0
	for _, r := range reports {
		if repair.Exhaustive(r) {
			n++
		}
	}
	return n
}

// Run evaluates every report. A cancelled context yields a zero Summary.
func (r Runner) Run(ctx context.Context, reports []report.Report) (Summary, error) {
	strategy := r.Strategy
	if strategy == nil {
		strategy = repair.Exhaustive
	}
	name := r.StrategyName
	if name == "" {
		name = repair.NameExhaustive
	}
	command := r.Command
	if command == "" {
		command = CommandRepair
	}

	start := time.Now()
	outcomes := make([]outcome, len(reports))
	err := forEach(ctx, len(reports), r.Workers, func(i int) error {
		valid := report.IsValid(reports[i])
		repairable := valid || strategy(reports[i])
		outcomes[i] = outcome{valid: valid, repairable: repairable}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, o := range outcomes {
		sum.Total++
		switch {
		case o.valid:
			sum.Valid++
			sum.Repairable++
			observability.RecordReport(observability.OutcomeValid)
		case o.repairable:
			sum.Repairable++
			observability.RecordReport(observability.OutcomeRepaired)
		default:
			observability.RecordReport(observability.OutcomeUnsafe)
		}
		if !o.valid {
			observability.RecordDecision(name, o.repairable)
		}
	}
	observability.RecordBatch(command, time.Since(start))
	log.Debug().
		Str("command", command).
		Str("strategy", name).
		Int("workers", r.Workers).
		Int("reports", sum.Total).
		Int("valid", sum.Valid).
		Int("repairable", sum.Repairable).
		Msg("batch evaluated")
	return sum, nil
}

// CountValid counts reports that are valid as-is. No repair strategy runs.
func CountValid(ctx context.Context, reports []report.Report, workers int) (int, error) {
	start := time.Now()
	valid := make([]bool, len(reports))
	err := forEach(ctx, len(reports), workers, func(i int) error {
		valid[i] = report.IsValid(reports[i])
		return nil
	})
	if err != nil {
		return 0, err
	}

	n := 0
	for _, ok := range valid {
		if ok {
			n++
			observability.RecordReport(observability.OutcomeValid)
			continue
		}
		observability.RecordReport(observability.OutcomeInvalid)
	}
	observability.RecordBatch(CommandCheck, time.Since(start))
	log.Debug().
		Str("command", CommandCheck).
		Int("workers", workers).
		Int("reports", len(reports)).
		Int("valid", n).
		Msg("batch checked")
	return n, nil
}

// forEach calls fn for every index in [0, n), fanning out when workers > 1.
func forEach(ctx context.Context, n, workers int, fn func(i int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
