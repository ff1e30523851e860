// Package dataprocessing turns raw litterfall field sheets into
// standardized net primary productivity estimates.
//
// # Architecture
//
// The package is organized as sequential pipeline stages:
//
//  1. Loader: reads the delimited (or xlsx) field sheet and coerces columns
//  2. Cleaner: row-local renames, total fallback and plausibility nulling
//  3. Normalizer: per-trap collection intervals and daily rates
//  4. Converter: daily per-trap rates to monthly carbon flux
//  5. Aggregator: trap-level and plot-level monthly tables
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Field sheet → Loader → Observations → Cleaner → Normalizer →
//	IntervalRecords + Diagnostics → Converter → FluxRecords →
//	Aggregator → TrapMonthly / PlotMonthly
//
// # Error Handling
//
// Only whole-file structural problems abort: a missing required column or
// an uncoercible cell raises a SchemaError before any processing. Every
// row- or group-local anomaly recovers locally: implausible totals are
// nulled, zero-length intervals null the affected rates, and trap series
// too short to form an interval are diverted to a diagnostics table that
// is returned to the caller, never silently dropped.
//
// # Missing Values
//
// Missing numeric values are NaN throughout, never zero. Aggregation
// ignores missing values; a zero mass is a real measurement.
package dataprocessing
