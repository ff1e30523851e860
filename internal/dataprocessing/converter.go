package dataprocessing

import (
	"context"
	"log/slog"
	"math"

	"littercli/internal/config"
	"littercli/pkg/contracts/domain"
)

// Converter rescales daily per-trap rates (g/trap/day) into monthly carbon
// flux (Mg C/ha/month) through the fixed protocol chain: trap area to
// hectare, grams to megagrams, dry mass to carbon, day to nominal month.
type Converter struct {
	logger *slog.Logger
	factor float64
}

// NewConverter creates a converter with the protocol conversion factor.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger, factor: config.MonthlyFluxFactor()}
}

// Convert produces one flux record per interval record. Infinite rates,
// the residue of zero-elapsed-day intervals, become missing values here so
// they never reach the aggregates.
func (c *Converter) Convert(ctx context.Context, intervals []domain.IntervalRecord) []domain.FluxRecord {
	out := make([]domain.FluxRecord, len(intervals))
	nulled := 0

	for i, rec := range intervals {
		flux := make(map[domain.Category]float64, len(domain.ConvertedCategories))
		for _, cat := range domain.ConvertedCategories {
			v := rec.Rate(cat) * c.factor
			if math.IsInf(v, 0) {
				v = domain.Missing()
				nulled++
			}
			flux[cat] = v
		}
		out[i] = domain.FluxRecord{
			Key:         rec.Key,
			ElapsedDays: rec.ElapsedDays,
			Flux:        flux,
		}
	}

	if nulled > 0 {
		c.logger.WarnContext(ctx, "nulled undefined rates from zero-length intervals",
			slog.Int("values", nulled))
	}
	c.logger.InfoContext(ctx, "converted daily rates to monthly flux",
		slog.Int("records", len(out)),
		slog.Float64("factor", c.factor))

	return out
}
