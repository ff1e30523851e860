package dataprocessing

import (
	"context"
	"log/slog"

	"littercli/internal/config"
	"littercli/pkg/contracts/domain"
)

// Cleaner applies the row-local cleaning rules: computes the per-row total
// with fallback to the recorded total, and nulls totals that fail the
// plausibility check. It carries no cross-row state, so rows can be cleaned
// and tested independently.
type Cleaner struct {
	logger   *slog.Logger
	maxTotal float64
}

// CleanStats summarizes what the cleaner changed.
type CleanStats struct {
	Rows              int
	SubstitutedTotals int // recorded total used because the category sum was zero
	ImplausibleTotals int // totals nulled for falling outside [0, ceiling]
}

// NewCleaner creates a cleaner using the configured plausibility ceiling.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger, maxTotal: config.MaxPlausibleTotalGrams}
}

// Clean applies CleanRow to every observation and reports what changed.
func (c *Cleaner) Clean(ctx context.Context, observations []domain.Observation) ([]domain.Observation, CleanStats) {
	stats := CleanStats{Rows: len(observations)}
	cleaned := make([]domain.Observation, len(observations))

	for i, obs := range observations {
		row, substituted, implausible := c.cleanRow(obs)
		cleaned[i] = row
		if substituted {
			stats.SubstitutedTotals++
		}
		if implausible {
			stats.ImplausibleTotals++
			c.logger.WarnContext(ctx, "implausible total nulled",
				slog.String("trap", obs.TrapKey().String()),
				slog.Int("year", obs.Year),
				slog.Int("month", obs.Month),
				slog.Int("day", obs.Day),
				slog.Float64("total_g", row.RecordedTotal))
		}
	}

	c.logger.InfoContext(ctx, "cleaned observations",
		slog.Int("rows", stats.Rows),
		slog.Int("substituted_totals", stats.SubstitutedTotals),
		slog.Int("implausible_totals", stats.ImplausibleTotals))

	return cleaned, stats
}

// CleanRow cleans a single observation. Exported for row-local testing.
func (c *Cleaner) CleanRow(obs domain.Observation) domain.Observation {
	row, _, _ := c.cleanRow(obs)
	return row
}

func (c *Cleaner) cleanRow(obs domain.Observation) (cleaned domain.Observation, substituted, implausible bool) {
	// Sum category masses, treating missing fractions as zero for the sum.
	// A fraction the team did not weigh must not erase the ones they did.
	var total float64
	for _, cat := range domain.Categories {
		v := obs.Mass(cat)
		if !domain.IsMissing(v) {
			total += v
		}
	}

	// Exactly zero means no fraction carried mass; prefer the sheet's own
	// recorded total in that case when one exists.
	if total == 0 && !domain.IsMissing(obs.RecordedTotal) {
		total = obs.RecordedTotal
		substituted = true
	}

	// Plausibility: outside [0, ceiling] is treated as missing, not zero.
	if total < 0 || total > c.maxTotal {
		obs.Total = domain.Missing()
		return obs, substituted, true
	}

	obs.Total = total
	return obs, substituted, false
}
