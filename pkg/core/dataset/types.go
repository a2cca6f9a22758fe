// Package dataset holds the cleaned per-row mortality dataset and its
// load-once store. Records are immutable after load; the projection engine
// only ever filters and reads them.
package dataset

import "ypll_explorer/pkg/core/cause"

// Covariates is the fixed-shape block of numeric risk factors attached to
// every record. It is replicated across cause rows within a
// (year, state, sex) group and does not vary by cause.
type Covariates struct {
	YearsFromStart     float64 `json:"years_from_start"`
	ObesityPct         float64 `json:"obesity_pct"`
	UninsuredPct       float64 `json:"uninsured_pct"`
	IncomeMean         float64 `json:"income_mean"`
	EmployedPct        float64 `json:"employed_pct"`
	DiabetesPct        float64 `json:"diabetes_pct"`
	EducaZ             float64 `json:"educa_z"`
	SmokingPctZ        float64 `json:"smoking_pct_z"`
	BingeDrinkPctZ     float64 `json:"binge_drink_pct_z"`
	SeatbeltAlwaysPctZ float64 `json:"seatbelt_always_pct_z"`
	RuralPct           float64 `json:"rural_pct"`
}

// MortalityRecord is one row of the dataset: a (year, state, sex, cause)
// stratum plus its covariate block.
type MortalityRecord struct {
	Year     int        `json:"year"`
	State    string     `json:"state"`
	Sex      string     `json:"sex"`
	CauseRaw string     `json:"cause_raw"`
	Cause    cause.Key  `json:"cause_key"`
	Covars   Covariates `json:"covariates"`
}

// CovariateColumns lists the shiftable numeric risk-factor columns, in the
// order the trained model consumed them. years_from_start is a time index,
// not a risk factor, so it is excluded here.
func CovariateColumns() []string {
	return []string{
		"obesity_pct",
		"uninsured_pct",
		"income_mean",
		"employed_pct",
		"diabetes_pct",
		"educa_z",
		"smoking_pct_z",
		"binge_drink_pct_z",
		"seatbelt_always_pct_z",
		"rural_pct",
	}
}

// CovariateValue returns the named covariate column value.
func (c Covariates) CovariateValue(column string) (float64, bool) {
	switch column {
	case "obesity_pct":
		return c.ObesityPct, true
	case "uninsured_pct":
		return c.UninsuredPct, true
	case "income_mean":
		return c.IncomeMean, true
	case "employed_pct":
		return c.EmployedPct, true
	case "diabetes_pct":
		return c.DiabetesPct, true
	case "educa_z":
		return c.EducaZ, true
	case "smoking_pct_z":
		return c.SmokingPctZ, true
	case "binge_drink_pct_z":
		return c.BingeDrinkPctZ, true
	case "seatbelt_always_pct_z":
		return c.SeatbeltAlwaysPctZ, true
	case "rural_pct":
		return c.RuralPct, true
	}
	return 0, false
}

// SetCovariateValue writes the named covariate column value. Unknown columns
// are a no-op; validation happens at the scenario boundary.
func (c *Covariates) SetCovariateValue(column string, v float64) {
	switch column {
	case "obesity_pct":
		c.ObesityPct = v
	case "uninsured_pct":
		c.UninsuredPct = v
	case "income_mean":
		c.IncomeMean = v
	case "employed_pct":
		c.EmployedPct = v
	case "diabetes_pct":
		c.DiabetesPct = v
	case "educa_z":
		c.EducaZ = v
	case "smoking_pct_z":
		c.SmokingPctZ = v
	case "binge_drink_pct_z":
		c.BingeDrinkPctZ = v
	case "seatbelt_always_pct_z":
		c.SeatbeltAlwaysPctZ = v
	case "rural_pct":
		c.RuralPct = v
	}
}
