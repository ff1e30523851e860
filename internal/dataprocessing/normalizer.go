package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"littercli/internal/config"
	"littercli/pkg/contracts/domain"
)

// Normalizer converts cumulative per-collection masses into daily rates.
// Collection intervals are irregular (weekly to monthly), so raw totals are
// not comparable across collections; dividing by the elapsed days between
// consecutive collections of the same trap makes them comparable.
//
// Each trap's time series is independent, so traps are fanned out across a
// bounded worker group; ordering only matters within a trap.
type Normalizer struct {
	logger  *slog.Logger
	workers int
}

// NormalizeResult pairs the interval table with the diagnostics the run
// produced. Diagnostics are part of the result contract, not a side effect:
// callers decide what to do with short series.
type NormalizeResult struct {
	Intervals   []domain.IntervalRecord
	Diagnostics []domain.Diagnostic
}

// NewNormalizer creates a normalizer; workers < 1 means sequential.
func NewNormalizer(logger *slog.Logger, workers int) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Normalizer{logger: logger, workers: workers}
}

// trapResult holds one trap's share of the output.
type trapResult struct {
	intervals  []domain.IntervalRecord
	diagnostic *domain.Diagnostic
}

// Normalize groups observations by trap, sorts each series by collection
// date and emits one interval record per adjacent pair. A series with fewer
// than two observations emits exactly one diagnostic instead; the run
// always continues past it.
func (n *Normalizer) Normalize(ctx context.Context, observations []domain.Observation) (NormalizeResult, error) {
	groups := make(map[domain.TrapKey][]domain.Observation)
	for _, obs := range observations {
		key := obs.TrapKey()
		groups[key] = append(groups[key], obs)
	}

	traps := make([]domain.TrapKey, 0, len(groups))
	for key := range groups {
		traps = append(traps, key)
	}
	sort.Slice(traps, func(i, j int) bool {
		if traps[i].Plot != traps[j].Plot {
			return traps[i].Plot < traps[j].Plot
		}
		return traps[i].Trap < traps[j].Trap
	})

	results := make([]trapResult, len(traps))

	if n.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(n.workers)
		for i, key := range traps {
			i, key := i, key
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = n.normalizeTrap(gctx, key, groups[key])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return NormalizeResult{}, err
		}
	} else {
		for i, key := range traps {
			if err := ctx.Err(); err != nil {
				return NormalizeResult{}, err
			}
			results[i] = n.normalizeTrap(ctx, key, groups[key])
		}
	}

	// Flatten in trap order; within a trap the intervals are already
	// chronological.
	var out NormalizeResult
	for _, r := range results {
		out.Intervals = append(out.Intervals, r.intervals...)
		if r.diagnostic != nil {
			out.Diagnostics = append(out.Diagnostics, *r.diagnostic)
		}
	}

	n.logger.InfoContext(ctx, "normalized collection intervals",
		slog.Int("traps", len(traps)),
		slog.Int("intervals", len(out.Intervals)),
		slog.Int("diagnostics", len(out.Diagnostics)))

	return out, nil
}

// normalizeTrap processes one trap's time series.
func (n *Normalizer) normalizeTrap(ctx context.Context, key domain.TrapKey, series []domain.Observation) trapResult {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date().Before(series[j].Date())
	})

	if len(series) < config.MinSeriesLength {
		diag := domain.Diagnostic{
			Trap:         key,
			SeriesLength: len(series),
			Reason:       domain.DiagnosticReasonShortSeries,
		}
		if len(series) > 0 {
			diag.FirstDate = series[0].Date()
		}
		n.logger.WarnContext(ctx, "trap series too short to form an interval",
			slog.String("trap", key.String()),
			slog.Int("series_length", len(series)))
		return trapResult{diagnostic: &diag}
	}

	intervals := make([]domain.IntervalRecord, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]

		// Absolute UTC instant difference, not calendar-field subtraction:
		// intervals spanning month or year boundaries must come out right.
		elapsed := cur.Date().Sub(prev.Date()).Hours() / 24.0

		if elapsed == 0 {
			// Two collections on the same date. The division below yields
			// Inf/NaN; the converter nulls those rather than letting them
			// propagate into the aggregates.
			n.logger.WarnContext(ctx, "zero elapsed days between collections",
				slog.String("trap", key.String()),
				slog.Int("year", cur.Year),
				slog.Int("month", cur.Month),
				slog.Int("day", cur.Day))
		}

		rates := make(map[domain.Category]float64, len(domain.Categories)+1)
		for _, cat := range domain.Categories {
			rates[cat] = cur.Mass(cat) / elapsed
		}
		rates[domain.CategoryTotal] = cur.Total / elapsed

		intervals = append(intervals, domain.IntervalRecord{
			Key:         cur.Key(),
			ElapsedDays: elapsed,
			Rates:       rates,
		})
	}

	// The first collection of the series never yields an interval: there is
	// no record of when the trap was installed, so its rate is undefined.
	return trapResult{intervals: intervals}
}
