package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"littercli/internal/config"
	"littercli/pkg/contracts/domain"
)

// Aggregator reduces the converted flux table into the two monthly report
// tables: per trap and per plot.
//
// Standard errors divide by the square root of a dataset-global distinct
// count - years for the trap table, traps for the plot table - rather than
// the group-local n. That denominator reproduces the published series and
// is kept verbatim; see DESIGN.md.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

type trapMonthKey struct {
	Plot  string
	Trap  int
	Year  int
	Month int
}

type plotMonthKey struct {
	Plot  string
	Year  int
	Month int
}

// TrapMonthly aggregates flux records per (plot, trap, year, month):
// mean and standard deviation per fraction, the negated mean interval
// length, and the standard error over the global distinct-year count.
func (a *Aggregator) TrapMonthly(ctx context.Context, flux []domain.FluxRecord) []domain.TrapMonthly {
	years := make(map[int]bool)
	groups := make(map[trapMonthKey][]domain.FluxRecord)
	for _, rec := range flux {
		years[rec.Key.Year] = true
		k := trapMonthKey{Plot: rec.Key.Plot, Trap: rec.Key.Trap, Year: rec.Key.Year, Month: rec.Key.Month}
		groups[k] = append(groups[k], rec)
	}

	seDenom := math.Sqrt(float64(len(years)))

	rows := make([]domain.TrapMonthly, 0, len(groups))
	for k, recs := range groups {
		row := domain.TrapMonthly{
			Plot:    k.Plot,
			Trap:    k.Trap,
			Year:    k.Year,
			Month:   k.Month,
			Mean:    make(map[domain.Category]float64, len(domain.ConvertedCategories)),
			SD:      make(map[domain.Category]float64, len(domain.ConvertedCategories)),
			SE:      make(map[domain.Category]float64, len(domain.ConvertedCategories)),
			Records: len(recs),
		}

		for _, cat := range domain.ConvertedCategories {
			values := make([]float64, len(recs))
			for i, rec := range recs {
				values[i] = rec.FluxFor(cat)
			}
			mean := nanMean(values)
			sd := nanSD(values)
			row.Mean[cat] = mean
			row.SD[cat] = sd
			row.SE[cat] = sd / seDenom
		}

		elapsed := make([]float64, len(recs))
		for i, rec := range recs {
			elapsed[i] = rec.ElapsedDays
		}
		// Negated on purpose: the source sheets report the mean interval
		// with this sign and downstream consumers expect it.
		row.MeanIntervalDays = -nanMean(elapsed)

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Plot != rows[j].Plot {
			return rows[i].Plot < rows[j].Plot
		}
		if rows[i].Trap != rows[j].Trap {
			return rows[i].Trap < rows[j].Trap
		}
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})

	a.logger.InfoContext(ctx, "aggregated trap-level monthly table",
		slog.Int("rows", len(rows)),
		slog.Int("distinct_years", len(years)))

	return rows
}

// PlotMonthly aggregates trap-level monthly means per (plot, year, month)
// across traps, with the standard error over the global distinct-trap
// count, and re-expresses the mean total flux as dry mass per square meter.
func (a *Aggregator) PlotMonthly(ctx context.Context, trapRows []domain.TrapMonthly) []domain.PlotMonthly {
	traps := make(map[domain.TrapKey]bool)
	groups := make(map[plotMonthKey][]domain.TrapMonthly)
	for _, row := range trapRows {
		traps[domain.TrapKey{Plot: row.Plot, Trap: row.Trap}] = true
		k := plotMonthKey{Plot: row.Plot, Year: row.Year, Month: row.Month}
		groups[k] = append(groups[k], row)
	}

	seDenom := math.Sqrt(float64(len(traps)))
	dryFactor := config.DryMassPerM2Factor()

	rows := make([]domain.PlotMonthly, 0, len(groups))
	for k, members := range groups {
		row := domain.PlotMonthly{
			Plot:  k.Plot,
			Year:  k.Year,
			Month: k.Month,
			Mean:  make(map[domain.Category]float64, len(domain.ConvertedCategories)),
			SD:    make(map[domain.Category]float64, len(domain.ConvertedCategories)),
			SE:    make(map[domain.Category]float64, len(domain.ConvertedCategories)),
			Traps: len(members),
		}

		for _, cat := range domain.ConvertedCategories {
			values := make([]float64, len(members))
			for i, m := range members {
				values[i] = m.Mean[cat]
			}
			mean := nanMean(values)
			sd := nanSD(values)
			row.Mean[cat] = mean
			row.SD[cat] = sd
			row.SE[cat] = sd / seDenom
		}

		row.TotalDryMassGPerM2 = row.Mean[domain.CategoryTotal] * dryFactor

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Plot != rows[j].Plot {
			return rows[i].Plot < rows[j].Plot
		}
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})

	a.logger.InfoContext(ctx, "aggregated plot-level monthly table",
		slog.Int("rows", len(rows)),
		slog.Int("distinct_traps", len(traps)))

	return rows
}
