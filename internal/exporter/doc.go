// Package exporter writes the pipeline's output tables as CSV files:
// the trap-level and plot-level monthly aggregates, the per-interval
// daily-rate table, and the short-series diagnostics table. Files are
// BOM-prefixed so spreadsheet tools open them as UTF-8.
package exporter
