package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// requiredColumns is the normalized schema the upstream export produces.
// The loader is strict: a missing column is a hard error, because silent
// column drift would corrupt predictions downstream.
var requiredColumns = []string{
	"year", "state", "sex", "UCD", "years_from_start",
	"obesity_pct", "uninsured_pct", "income_mean", "employed_pct",
	"diabetes_pct", "educa_z", "smoking_pct_z", "binge_drink_pct_z",
	"seatbelt_always_pct_z", "rural_pct",
}

// ParseCSV reads the normalized per-row export into records. It does no
// schema repair; type coercion beyond parsing the declared columns is an
// upstream concern.
func ParseCSV(r io.Reader) ([]MortalityRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	records := make([]MortalityRecord, 0, 1024)
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, idx map[string]int) (MortalityRecord, error) {
	var rec MortalityRecord

	year, err := strconv.Atoi(row[idx["year"]])
	if err != nil {
		return rec, fmt.Errorf("bad year %q: %w", row[idx["year"]], err)
	}
	rec.Year = year
	rec.State = row[idx["state"]]
	rec.Sex = row[idx["sex"]]
	rec.CauseRaw = row[idx["UCD"]]

	floats := map[string]*float64{
		"years_from_start":      &rec.Covars.YearsFromStart,
		"obesity_pct":           &rec.Covars.ObesityPct,
		"uninsured_pct":         &rec.Covars.UninsuredPct,
		"income_mean":           &rec.Covars.IncomeMean,
		"employed_pct":          &rec.Covars.EmployedPct,
		"diabetes_pct":          &rec.Covars.DiabetesPct,
		"educa_z":               &rec.Covars.EducaZ,
		"smoking_pct_z":         &rec.Covars.SmokingPctZ,
		"binge_drink_pct_z":     &rec.Covars.BingeDrinkPctZ,
		"seatbelt_always_pct_z": &rec.Covars.SeatbeltAlwaysPctZ,
		"rural_pct":             &rec.Covars.RuralPct,
	}
	for col, dst := range floats {
		v, err := strconv.ParseFloat(row[idx[col]], 64)
		if err != nil {
			return rec, fmt.Errorf("bad %s %q: %w", col, row[idx[col]], err)
		}
		*dst = v
	}

	return rec, nil
}

// Load reads a CSV file from disk into a deduplicated Store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	store := NewStore(records)
	fmt.Printf("[DATA] Loaded %d records from %s (%d years, %d states)\n",
		store.Len(), path, len(store.Years()), len(store.States()))
	return store, nil
}
