package domain

import "time"

// IntervalRecord is one collection interval: the span between two adjacent
// collections of the same trap, keyed by the later collection. Rates hold
// grams per trap per day for every fraction plus the cleaned total.
//
// A trap's first collection never produces an interval: the data model has
// no trap-installation date, so the first rate is undefined rather than
// assumed.
type IntervalRecord struct {
	Key         CollectionKey        `json:"key"`
	ElapsedDays float64              `json:"elapsed_days"`
	Rates       map[Category]float64 `json:"rates"`
}

// Date returns the date of the later collection that closes the interval.
func (r IntervalRecord) Date() time.Time {
	return r.Key.Date()
}

// Rate returns the daily rate for a fraction, or the missing sentinel.
func (r IntervalRecord) Rate(c Category) float64 {
	if r.Rates == nil {
		return Missing()
	}
	v, ok := r.Rates[c]
	if !ok {
		return Missing()
	}
	return v
}

// FluxRecord is an interval after unit conversion: monthly carbon flux in
// Mg C per hectare per month for each converted fraction.
type FluxRecord struct {
	Key         CollectionKey        `json:"key"`
	ElapsedDays float64              `json:"elapsed_days"`
	Flux        map[Category]float64 `json:"flux"`
}

// FluxFor returns the monthly flux for a fraction, or the missing sentinel.
func (r FluxRecord) FluxFor(c Category) float64 {
	if r.Flux == nil {
		return Missing()
	}
	v, ok := r.Flux[c]
	if !ok {
		return Missing()
	}
	return v
}

// DiagnosticReasonShortSeries marks a trap series too short to form an
// interval.
const DiagnosticReasonShortSeries = "insufficient_history"

// Diagnostic records a trap time series that could not contribute rates.
// Diagnostics are returned to the caller alongside the interval table and
// must never be silently discarded; the run continues past them.
type Diagnostic struct {
	Trap         TrapKey   `json:"trap"`
	SeriesLength int       `json:"series_length"`
	FirstDate    time.Time `json:"first_date"`
	Reason       string    `json:"reason"`
}
