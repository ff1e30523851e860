package domain

import (
	"fmt"
	"math"
	"time"
)

// Category identifies a litterfall fraction measured per collection.
type Category string

const (
	CategoryLeaves      Category = "leaves"
	CategoryTwigs       Category = "twigs"
	CategoryFlowers     Category = "flowers"
	CategoryFruits      Category = "fruits"
	CategorySeeds       Category = "seeds"
	CategoryBromeliads  Category = "brom"
	CategoryEpiphytes   Category = "epi"
	CategoryOther       Category = "other"
	CategoryPalmLeaves  Category = "palm_leaves"
	CategoryPalmFlowers Category = "palm_flowers"
	CategoryPalmFruits  Category = "palm_fruits"

	// CategoryTotal is the per-row total dry mass, computed by the cleaner.
	CategoryTotal Category = "total"
)

// Categories lists every measured litter fraction, excluding the computed
// total, in canonical output order.
var Categories = []Category{
	CategoryLeaves,
	CategoryTwigs,
	CategoryFlowers,
	CategoryFruits,
	CategorySeeds,
	CategoryBromeliads,
	CategoryEpiphytes,
	CategoryOther,
	CategoryPalmLeaves,
	CategoryPalmFlowers,
	CategoryPalmFruits,
}

// ConvertedCategories lists the fractions that are carried through the
// monthly carbon-flux conversion and the aggregate tables. Seed and palm
// fractions stay at daily-rate resolution, matching the field protocol.
var ConvertedCategories = []Category{
	CategoryLeaves,
	CategoryTwigs,
	CategoryFlowers,
	CategoryFruits,
	CategoryBromeliads,
	CategoryEpiphytes,
	CategoryOther,
	CategoryTotal,
}

// Missing returns the sentinel for an absent or nulled numeric value.
// Missing values are NaN, never zero: a zero mass is a real measurement.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// TrapKey is the stable identity of one litter trap. It groups observations
// into the per-trap time series the normalizer walks.
type TrapKey struct {
	Plot string `json:"plot"`
	Trap int    `json:"trap"`
}

// String renders the key in the field-sheet "plot.trap" notation.
func (k TrapKey) String() string {
	return fmt.Sprintf("%s.%d", k.Plot, k.Trap)
}

// CollectionKey identifies a single collection event. It is carried as a
// structured key through the whole pipeline; nothing downstream re-parses
// identifier strings.
type CollectionKey struct {
	Plot  string `json:"plot"`
	Trap  int    `json:"trap"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
}

// TrapKey returns the trap identity portion of the key.
func (k CollectionKey) TrapKey() TrapKey {
	return TrapKey{Plot: k.Plot, Trap: k.Trap}
}

// Date returns the collection date as a UTC instant. Elapsed-day arithmetic
// is done on these instants so month and year boundaries are spanned
// correctly.
func (k CollectionKey) Date() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// Observation is one row of the field sheet: the masses emptied from one
// trap on one collection date.
type Observation struct {
	Plot     string  `json:"plot" validate:"required"`
	Year     int     `json:"year" validate:"required,min=1900,max=2200"`
	Month    int     `json:"month" validate:"required,min=1,max=12"`
	Day      int     `json:"day" validate:"required,min=1,max=31"`
	Trap     int     `json:"trap" validate:"required,min=1"`
	TrapSize float64 `json:"trap_size_m2"`

	// Masses holds grams of dry mass per fraction. Missing values are NaN.
	Masses map[Category]float64 `json:"masses"`

	// RecordedTotal is the total the field team wrote on the sheet, when
	// present. The cleaner prefers the computed category sum and falls back
	// to this only when the sum is exactly zero.
	RecordedTotal float64 `json:"recorded_total"`

	// Total is the cleaned per-row total in grams; NaN until the cleaner
	// runs, and NaN afterwards if the value failed the plausibility check.
	Total float64 `json:"total"`

	Quality  string `json:"quality_code"`
	Comments string `json:"comments"`
}

// Key returns the structured collection identifier for this row.
func (o Observation) Key() CollectionKey {
	return CollectionKey{Plot: o.Plot, Trap: o.Trap, Year: o.Year, Month: o.Month, Day: o.Day}
}

// TrapKey returns the trap identity this row belongs to.
func (o Observation) TrapKey() TrapKey {
	return TrapKey{Plot: o.Plot, Trap: o.Trap}
}

// Date returns the collection date as a UTC instant.
func (o Observation) Date() time.Time {
	return o.Key().Date()
}

// Mass returns the mass for a fraction, or the missing sentinel when the
// fraction was never initialized.
func (o Observation) Mass(c Category) float64 {
	if o.Masses == nil {
		return Missing()
	}
	v, ok := o.Masses[c]
	if !ok {
		return Missing()
	}
	return v
}
