package exporter

import (
	"fmt"
	"math"
	"strconv"

	"littercli/internal/config"
	"littercli/pkg/contracts/domain"
)

// formatValue renders a float for CSV output. Missing values and the
// infinities left by zero-length intervals both come out as "NA".
func formatValue(v float64) string {
	if domain.IsMissing(v) || math.IsInf(v, 0) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// lookup reads a category value from an aggregate map, missing when absent.
func lookup(m map[domain.Category]float64, c domain.Category) float64 {
	v, ok := m[c]
	if !ok {
		return domain.Missing()
	}
	return v
}

// TrapMonthlyHeaders returns the column header of the trap-level table.
func TrapMonthlyHeaders() []string {
	headers := []string{"plot", "trap", "year", "month"}
	for _, cat := range domain.ConvertedCategories {
		headers = append(headers,
			fmt.Sprintf("mean_%s", cat),
			fmt.Sprintf("sd_%s", cat),
			fmt.Sprintf("se_%s", cat))
	}
	return append(headers, "mean_interval_days_neg", "records")
}

// WriteTrapMonthly writes the per-trap monthly aggregate table.
func (w *CSVWriter) WriteTrapMonthly(rows []domain.TrapMonthly) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		rec := []string{
			row.Plot,
			strconv.Itoa(row.Trap),
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Month),
		}
		for _, cat := range domain.ConvertedCategories {
			rec = append(rec,
				formatValue(lookup(row.Mean, cat)),
				formatValue(lookup(row.SD, cat)),
				formatValue(lookup(row.SE, cat)))
		}
		rec = append(rec,
			formatValue(row.MeanIntervalDays),
			strconv.Itoa(row.Records))
		records[i] = rec
	}
	return w.WriteSimpleCSV(config.TrapMonthlyCSV, TrapMonthlyHeaders(), records)
}

// PlotMonthlyHeaders returns the column header of the plot-level table.
func PlotMonthlyHeaders() []string {
	headers := []string{"plot", "year", "month"}
	for _, cat := range domain.ConvertedCategories {
		headers = append(headers,
			fmt.Sprintf("mean_%s", cat),
			fmt.Sprintf("sd_%s", cat),
			fmt.Sprintf("se_%s", cat))
	}
	return append(headers, "total_dry_mass_g_m2_month", "traps")
}

// WritePlotMonthly writes the per-plot monthly aggregate table.
func (w *CSVWriter) WritePlotMonthly(rows []domain.PlotMonthly) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		rec := []string{
			row.Plot,
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Month),
		}
		for _, cat := range domain.ConvertedCategories {
			rec = append(rec,
				formatValue(lookup(row.Mean, cat)),
				formatValue(lookup(row.SD, cat)),
				formatValue(lookup(row.SE, cat)))
		}
		rec = append(rec,
			formatValue(row.TotalDryMassGPerM2),
			strconv.Itoa(row.Traps))
		records[i] = rec
	}
	return w.WriteSimpleCSV(config.PlotMonthlyCSV, PlotMonthlyHeaders(), records)
}

// WriteDiagnostics writes the short-series diagnostics table for manual
// review. Writing it is a courtesy; the table itself is returned to the
// caller by the normalizer regardless.
func (w *CSVWriter) WriteDiagnostics(diags []domain.Diagnostic) error {
	headers := []string{"plot", "trap", "series_length", "first_date", "reason"}
	records := make([][]string, len(diags))
	for i, d := range diags {
		firstDate := ""
		if !d.FirstDate.IsZero() {
			firstDate = d.FirstDate.Format("2006-01-02")
		}
		records[i] = []string{
			d.Trap.Plot,
			strconv.Itoa(d.Trap.Trap),
			strconv.Itoa(d.SeriesLength),
			firstDate,
			d.Reason,
		}
	}
	return w.WriteSimpleCSV(config.DiagnosticsCSV, headers, records)
}

// WriteDailyRates streams the per-interval daily-rate table; it is the
// largest output, one row per collection interval.
func (w *CSVWriter) WriteDailyRates(intervals []domain.IntervalRecord) error {
	headers := []string{"plot", "trap", "year", "month", "day", "elapsed_days"}
	for _, cat := range domain.Categories {
		headers = append(headers, fmt.Sprintf("rate_%s", cat))
	}
	headers = append(headers, "rate_total")

	sw, err := w.CreateStreamWriter(config.DailyRatesCSV, headers)
	if err != nil {
		return err
	}

	for _, rec := range intervals {
		row := []string{
			rec.Key.Plot,
			strconv.Itoa(rec.Key.Trap),
			strconv.Itoa(rec.Key.Year),
			strconv.Itoa(rec.Key.Month),
			strconv.Itoa(rec.Key.Day),
			formatValue(rec.ElapsedDays),
		}
		for _, cat := range domain.Categories {
			row = append(row, formatValue(rec.Rate(cat)))
		}
		row = append(row, formatValue(rec.Rate(domain.CategoryTotal)))
		if err := sw.WriteRow(row); err != nil {
			sw.Close()
			return err
		}
	}

	return sw.Close()
}
