package dataprocessing

import (
	"littercli/pkg/contracts/domain"
)

// newObs builds an observation with every fraction missing; tests fill in
// what they need.
func newObs(plot string, trap, year, month, day int) domain.Observation {
	masses := make(map[domain.Category]float64, len(domain.Categories))
	for _, c := range domain.Categories {
		masses[c] = domain.Missing()
	}
	return domain.Observation{
		Plot:          plot,
		Trap:          trap,
		Year:          year,
		Month:         month,
		Day:           day,
		TrapSize:      0.25,
		Masses:        masses,
		RecordedTotal: domain.Missing(),
		Total:         domain.Missing(),
	}
}

// withMass sets one fraction's mass on a fresh copy of the observation.
func withMass(o domain.Observation, c domain.Category, v float64) domain.Observation {
	masses := make(map[domain.Category]float64, len(o.Masses))
	for k, m := range o.Masses {
		masses[k] = m
	}
	masses[c] = v
	o.Masses = masses
	return o
}
