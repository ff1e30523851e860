package config

// Application constants - all hardcoded values for the litterfall pipeline
const (
	// Application Info
	AppName = "Litter CLI"

	// Trap geometry and unit conversion. The monthly-flux chain is fixed by
	// the field protocol: the published series was produced with exactly
	// these factors, so they must not be reordered or rounded.
	TrapAreaM2             = 0.25 // collection area of one trap
	SquareMetersPerHectare = 10000.0
	GramsPerMegagram       = 1e6
	CarbonFraction         = 0.49 // dry mass to carbon mass
	NominalMonthDays       = 30.0 // daily rate to nominal month

	// Plausibility ceiling for a single collection's total dry mass, grams.
	// Totals outside [0, MaxPlausibleTotalGrams] are nulled, not zeroed.
	MaxPlausibleTotalGrams = 1500.0

	// Minimum observations a trap series needs to form a collection interval.
	MinSeriesLength = 2

	// File Paths (relative to working directory)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultReportsDir = "data/reports"

	// Well-known output files
	TrapMonthlyCSV = "trap_monthly.csv"
	PlotMonthlyCSV = "plot_monthly.csv"
	DailyRatesCSV  = "daily_rates.csv"
	DiagnosticsCSV = "diagnostics.csv"
)

// MonthlyFluxFactor returns the factor that converts a daily per-trap rate
// (g/trap/day) into monthly carbon flux (Mg C/ha/month): scale trap area to
// hectare, grams to megagrams, dry mass to carbon, day to nominal month.
func MonthlyFluxFactor() float64 {
	return (SquareMetersPerHectare / TrapAreaM2) *
		(1.0 / GramsPerMegagram) *
		CarbonFraction *
		NominalMonthDays
}

// DryMassPerM2Factor returns the factor that re-expresses monthly carbon
// flux (Mg C/ha/month) as raw dry mass per area (g/m2/month), inverting the
// carbon-fraction and area scaling of the conversion stage.
func DryMassPerM2Factor() float64 {
	return (1.0 / CarbonFraction) * GramsPerMegagram / SquareMetersPerHectare
}
