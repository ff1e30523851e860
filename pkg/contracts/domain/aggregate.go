package domain

// TrapMonthly is the per-trap monthly aggregate: moments of the converted
// monthly flux across the collection intervals that closed in one calendar
// month for one trap.
type TrapMonthly struct {
	Plot  string `json:"plot"`
	Trap  int    `json:"trap"`
	Year  int    `json:"year"`
	Month int    `json:"month"`

	Mean map[Category]float64 `json:"mean"` // Mg C/ha/month
	SD   map[Category]float64 `json:"sd"`
	SE   map[Category]float64 `json:"se"`

	// MeanIntervalDays is the mean collection-interval length for the
	// month, reported negated. The sign convention reproduces the source
	// sheets verbatim so downstream comparisons keep working.
	MeanIntervalDays float64 `json:"mean_interval_days_negated"`

	// Records is the number of intervals aggregated into this row.
	Records int `json:"records"`
}

// PlotMonthly is the per-plot monthly aggregate across traps.
type PlotMonthly struct {
	Plot  string `json:"plot"`
	Year  int    `json:"year"`
	Month int    `json:"month"`

	Mean map[Category]float64 `json:"mean"` // Mg C/ha/month
	SD   map[Category]float64 `json:"sd"`
	SE   map[Category]float64 `json:"se"`

	// TotalDryMassGPerM2 re-expresses the mean total flux in raw dry-mass
	// area units, g/m2/month, by inverting the carbon-fraction and area
	// scaling of the conversion stage.
	TotalDryMassGPerM2 float64 `json:"total_dry_mass_g_m2_month"`

	// Traps is the number of traps contributing to this row.
	Traps int `json:"traps"`
}
