package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"littercli/internal/config"
	"littercli/pkg/contracts/domain"
)

// TestPipeline_EndToEnd walks a small field sheet through every stage:
// load, clean, normalize, convert, aggregate.
func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	path := writeTempCSV(t,
		testHeader,
		// trap P1.1: three collections, two weeks then thirty days apart
		"P1,2020,1,1,1,0.25,10,0,0,0,0,0,0,0,0,0,0,10,ok,",
		"P1,2020,1,15,1,0.25,14,0,0,0,0,0,0,0,0,0,0,14,ok,",
		"P1,2020,2,14,1,0.25,30,0,0,0,0,0,0,0,0,0,0,30,ok,",
		// trap P1.2: single observation, becomes a diagnostic
		"P1,2020,1,15,2,0.25,5,0,0,0,0,0,0,0,0,0,0,5,ok,",
		// trap P1.3: implausible total on the second collection
		"P1,2020,1,1,3,0.25,8,0,0,0,0,0,0,0,0,0,0,8,ok,",
		"P1,2020,1,15,3,0.25,1600,0,0,0,0,0,0,0,0,0,0,1600,check,too heavy",
	)

	loader := NewLoader(logger, ',', "")
	observations, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, observations, 6)

	cleaner := NewCleaner(logger)
	observations, stats := cleaner.Clean(ctx, observations)
	assert.Equal(t, 1, stats.ImplausibleTotals)

	normalizer := NewNormalizer(logger, 2)
	result, err := normalizer.Normalize(ctx, observations)
	require.NoError(t, err)

	// P1.1 contributes 2 intervals, P1.3 contributes 1, P1.2 none.
	assert.Len(t, result.Intervals, 3)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.TrapKey{Plot: "P1", Trap: 2}, result.Diagnostics[0].Trap)

	converter := NewConverter(logger)
	flux := converter.Convert(ctx, result.Intervals)
	require.Len(t, flux, 3)

	// P1.1's second interval: 30 g over 30 days = 1 g/trap/day.
	var p11Feb domain.FluxRecord
	for _, rec := range flux {
		if rec.Key.Trap == 1 && rec.Key.Month == 2 {
			p11Feb = rec
		}
	}
	assert.InDelta(t, config.MonthlyFluxFactor(), p11Feb.FluxFor(domain.CategoryTotal), 1e-12)

	// P1.3's interval total was nulled by the cleaner; the flux stays
	// missing rather than becoming zero.
	var p13 domain.FluxRecord
	for _, rec := range flux {
		if rec.Key.Trap == 3 {
			p13 = rec
		}
	}
	assert.True(t, domain.IsMissing(p13.FluxFor(domain.CategoryTotal)))
	assert.False(t, domain.IsMissing(p13.FluxFor(domain.CategoryLeaves)))

	aggregator := NewAggregator(logger)
	trapRows := aggregator.TrapMonthly(ctx, flux)
	// (P1,1,2020,1), (P1,1,2020,2), (P1,3,2020,1)
	require.Len(t, trapRows, 3)

	plotRows := aggregator.PlotMonthly(ctx, trapRows)
	// (P1,2020,1) across traps 1 and 3, (P1,2020,2) from trap 1 alone
	require.Len(t, plotRows, 2)
	assert.Equal(t, 2, plotRows[0].Traps)
	assert.Equal(t, 1, plotRows[1].Traps)
}
