package predict

import "ypll_explorer/pkg/core/dataset"

// FeatureColumns is the exact column order the model was trained with.
// Changing this order without retraining breaks every prediction silently,
// which is why the frame carries it explicitly on the wire.
var FeatureColumns = []string{
	"year", "state", "sex", "UCD", "years_from_start",
	"obesity_pct", "uninsured_pct", "income_mean", "employed_pct",
	"diabetes_pct", "educa_z", "smoking_pct_z", "binge_drink_pct_z",
	"seatbelt_always_pct_z", "rural_pct",
}

// FeatureRow is one model input row. Field order mirrors FeatureColumns.
type FeatureRow struct {
	Year               int     `json:"year"`
	State              string  `json:"state"`
	Sex                string  `json:"sex"`
	UCD                string  `json:"UCD"`
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

// FeatureFrame is the full model input for one Predict call. The engine
// builds one frame per projection and invokes the model once, never per-row.
type FeatureFrame struct {
	Columns []string     `json:"columns"`
	Rows    []FeatureRow `json:"rows"`
}

// BuildFrame converts filtered dataset records into a model input frame,
// preserving record order so predictions line up by index.
func BuildFrame(records []dataset.MortalityRecord) FeatureFrame {
	rows := make([]FeatureRow, len(records))
	for i, rec := range records {
		rows[i] = FeatureRow{
			Year:               rec.Year,
			State:              rec.State,
			Sex:                rec.Sex,
			UCD:                rec.CauseRaw,
			YearsFromStart:     rec.Covars.YearsFromStart,
			ObesityPct:         rec.Covars.ObesityPct,
			UninsuredPct:       rec.Covars.UninsuredPct,
			IncomeMean:         rec.Covars.IncomeMean,
			EmployedPct:        rec.Covars.EmployedPct,
			DiabetesPct:        rec.Covars.DiabetesPct,
			EducaZ:             rec.Covars.EducaZ,
			SmokingPctZ:        rec.Covars.SmokingPctZ,
			BingeDrinkPctZ:     rec.Covars.BingeDrinkPctZ,
			SeatbeltAlwaysPctZ: rec.Covars.SeatbeltAlwaysPctZ,
			RuralPct:           rec.Covars.RuralPct,
		}
	}
	return FeatureFrame{Columns: FeatureColumns, Rows: rows}
}

// numericValue returns the value of a numeric feature column for this row.
// Categorical columns (state, sex, UCD) are handled by effect tables, not
// here.
func (r FeatureRow) numericValue(column string) (float64, bool) {
	switch column {
	case "year":
		return float64(r.Year), true
	case "years_from_start":
		return r.YearsFromStart, true
	case "obesity_pct":
		return r.ObesityPct, true
	case "uninsured_pct":
		return r.UninsuredPct, true
	case "income_mean":
		return r.IncomeMean, true
	case "employed_pct":
		return r.EmployedPct, true
	case "educa_z":
		return r.EducaZ, true
	case "diabetes_pct":
		return r.DiabetesPct, true
	case "smoking_pct_z":
		return r.SmokingPctZ, true
	case "binge_drink_pct_z":
		return r.BingeDrinkPctZ, true
	case "seatbelt_always_pct_z":
		return r.SeatbeltAlwaysPctZ, true
	case "rural_pct":
		return r.RuralPct, true
	}
	return 0, false
}
