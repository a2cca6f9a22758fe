package projection_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"ypll_explorer/pkg/core/cause"
	"ypll_explorer/pkg/core/dataset"
	"ypll_explorer/pkg/core/predict"
	"ypll_explorer/pkg/core/projection"
	"ypll_explorer/pkg/core/scenario"
)

const (
	ucdCancer = "#Malignant neoplasms (C00-C97)"
	ucdHeart  = "#Diseases of heart (I00-I09,I11,I13,I20-I51)"
	ucdStroke = "#Cerebrovascular diseases (I60-I69)"
)

// stubModel returns a fixed prediction per UCD label, ignoring covariates.
// Deterministic and infallible, which is exactly what the engine assumes.
type stubModel struct {
	byUCD map[string]float64
}

func (m stubModel) Predict(_ context.Context, frame predict.FeatureFrame) ([]float64, error) {
	out := make([]float64, len(frame.Rows))
	for i, row := range frame.Rows {
		out[i] = m.byUCD[row.UCD]
	}
	return out, nil
}

type failingModel struct{}

func (failingModel) Predict(_ context.Context, _ predict.FeatureFrame) ([]float64, error) {
	return nil, fmt.Errorf("model service down")
}

func rec(year int, state, sex, ucd string) dataset.MortalityRecord {
	return dataset.MortalityRecord{Year: year, State: state, Sex: sex, CauseRaw: ucd}
}

func findState(t *testing.T, summaries []projection.StateSummary, state string) projection.StateSummary {
	t.Helper()
	for _, s := range summaries {
		if s.State == state {
			return s
		}
	}
	t.Fatalf("state %q not in summaries", state)
	return projection.StateSummary{}
}

func TestOhioEndToEnd(t *testing.T) {
	// Two Ohio strata in 2030: cancer predicts 100, heart disease 50.
	// Scenario cancer -10%, heart 0%:
	//   baseline = 150
	//   adjusted = 100*0.9 + 50*1.0 = 140
	//   gained   = 10
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Ohio", "Both", ucdHeart),
	})
	model := stubModel{byUCD: map[string]float64{ucdCancer: 100, ucdHeart: 50}}
	engine := projection.NewEngine(store, model)

	sc, err := scenario.Validate(map[string]float64{"cancer": -10, "heart_disease": 0})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	summaries, err := engine.Project(context.Background(), sc, 2030)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}

	ohio := summaries[0]
	if ohio.State != "Ohio" || ohio.StateAbbrev != "OH" {
		t.Errorf("Expected Ohio/OH, got %s/%s", ohio.State, ohio.StateAbbrev)
	}
	if math.Abs(ohio.BaselineTotal-150) > 1e-9 {
		t.Errorf("Expected baseline 150, got %f", ohio.BaselineTotal)
	}
	if math.Abs(ohio.AdjustedTotal-140) > 1e-9 {
		t.Errorf("Expected adjusted 140, got %f", ohio.AdjustedTotal)
	}
	if math.Abs(ohio.YearsGained-10) > 1e-9 {
		t.Errorf("Expected 10 years gained, got %f", ohio.YearsGained)
	}
}

func TestConservation(t *testing.T) {
	// All factors 1.0 => adjusted == baseline and gained == 0 for every
	// state, for every year present in the data.
	records := []dataset.MortalityRecord{
		rec(2028, "Ohio", "Male", ucdCancer),
		rec(2028, "Ohio", "Female", ucdHeart),
		rec(2028, "Texas", "Both", ucdStroke),
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Texas", "Both", ucdHeart),
	}
	store := dataset.NewStore(records)
	model := stubModel{byUCD: map[string]float64{ucdCancer: 120.5, ucdHeart: 88.25, ucdStroke: 41.125}}
	engine := projection.NewEngine(store, model)

	neutral, _ := scenario.Validate(map[string]float64{
		"cancer": 0, "heart_disease": 0, "stroke": 0, "lower_resp": 0, "accidents": 0,
	})

	for _, year := range store.Years() {
		summaries, err := engine.Project(context.Background(), neutral, year)
		if err != nil {
			t.Fatalf("Project(%d) failed: %v", year, err)
		}
		for _, s := range summaries {
			if s.AdjustedTotal != s.BaselineTotal {
				t.Errorf("%d %s: adjusted %f != baseline %f", year, s.State, s.AdjustedTotal, s.BaselineTotal)
			}
			if s.YearsGained != 0 {
				t.Errorf("%d %s: expected 0 years gained, got %f", year, s.State, s.YearsGained)
			}
		}
	}
}

func TestLinearity(t *testing.T) {
	// Single-cause scenario {cancer: pct}: state years_gained must equal
	// cancerTotal * (-pct/100) to 1e-6 relative tolerance.
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Male", ucdCancer),
		rec(2030, "Ohio", "Female", ucdCancer),
		rec(2030, "Ohio", "Both", ucdHeart),
	})
	model := stubModel{byUCD: map[string]float64{ucdCancer: 333.7, ucdHeart: 120.9}}
	engine := projection.NewEngine(store, model)

	cancerTotal := 333.7 * 2

	for _, pct := range []float64{-20, -10, -1, 5, 12.5} {
		sc, _ := scenario.Validate(map[string]float64{"cancer": pct})
		summaries, err := engine.Project(context.Background(), sc, 2030)
		if err != nil {
			t.Fatalf("Project failed: %v", err)
		}
		ohio := findState(t, summaries, "Ohio")
		expected := cancerTotal * (-pct / 100)
		if math.Abs(ohio.YearsGained-expected) > 1e-6*math.Abs(cancerTotal) {
			t.Errorf("pct=%f: expected gained %f, got %f", pct, expected, ohio.YearsGained)
		}
	}
}

func TestIdempotence(t *testing.T) {
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Texas", "Both", ucdHeart),
		rec(2030, "Texas", "Both", ucdStroke),
	})
	model := stubModel{byUCD: map[string]float64{ucdCancer: 101.1, ucdHeart: 77.7, ucdStroke: 13.13}}
	engine := projection.NewEngine(store, model)

	sc, _ := scenario.Validate(map[string]float64{"cancer": -7.5, "stroke": 3})

	first, err := engine.Project(context.Background(), sc, 2030)
	if err != nil {
		t.Fatalf("first Project failed: %v", err)
	}
	second, err := engine.Project(context.Background(), sc, 2030)
	if err != nil {
		t.Fatalf("second Project failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Project is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestUnknownCauseNeutrality(t *testing.T) {
	// A record with an unmapped UCD label contributes to the baseline but
	// passes through every scenario unadjusted.
	unknownUCD := "#Septicemia (A40-A41)"
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Ohio", "Both", unknownUCD),
	})
	model := stubModel{byUCD: map[string]float64{ucdCancer: 200, unknownUCD: 60}}
	engine := projection.NewEngine(store, model)

	sc, _ := scenario.Validate(map[string]float64{"cancer": -50})
	summaries, err := engine.Project(context.Background(), sc, 2030)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	ohio := findState(t, summaries, "Ohio")
	if math.Abs(ohio.BaselineTotal-260) > 1e-9 {
		t.Errorf("Expected baseline 260, got %f", ohio.BaselineTotal)
	}
	// Adjusted = 200*0.5 + 60*1.0 = 160
	if math.Abs(ohio.AdjustedTotal-160) > 1e-9 {
		t.Errorf("Expected adjusted 160, got %f", ohio.AdjustedTotal)
	}

	for _, cb := range ohio.Causes {
		if cb.Cause == cause.Unrecognized && cb.Factor != 1.0 {
			t.Errorf("Unrecognized cause got factor %f, want 1.0", cb.Factor)
		}
	}
}

func TestShareValidity(t *testing.T) {
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Ohio", "Both", ucdHeart),
		rec(2030, "Ohio", "Both", ucdStroke),
	})
	model := stubModel{byUCD: map[string]float64{ucdCancer: 300, ucdHeart: 150, ucdStroke: 50}}
	engine := projection.NewEngine(store, model)

	summaries, err := engine.Project(context.Background(), scenario.Scenario{}, 2030)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	ohio := findState(t, summaries, "Ohio")

	sum := 0.0
	for _, cb := range ohio.Causes {
		sum += cb.Share
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("Shares sum to %f, want 1.0", sum)
	}
}

func TestShareZeroDenominator(t *testing.T) {
	// A model predicting zero everywhere must produce shares of exactly 0.0,
	// never NaN or a panic.
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Ohio", "Both", ucdHeart),
	})
	engine := projection.NewEngine(store, stubModel{byUCD: map[string]float64{}})

	summaries, err := engine.Project(context.Background(), scenario.Scenario{}, 2030)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	ohio := findState(t, summaries, "Ohio")
	for _, cb := range ohio.Causes {
		if cb.Share != 0.0 {
			t.Errorf("Expected share 0.0 for zero state total, got %f", cb.Share)
		}
	}
}

func TestEmptyYear(t *testing.T) {
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
	})
	engine := projection.NewEngine(store, stubModel{byUCD: map[string]float64{ucdCancer: 100}})

	summaries, err := engine.Project(context.Background(), scenario.Scenario{}, 1999)
	if err != nil {
		t.Fatalf("Empty year must not error, got %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("Expected empty summary set, got %d rows", len(summaries))
	}
}

func TestPredictionErrorPropagates(t *testing.T) {
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
	})
	engine := projection.NewEngine(store, failingModel{})

	summaries, err := engine.Project(context.Background(), scenario.Scenario{}, 2030)
	if summaries != nil {
		t.Errorf("Expected no partial results, got %d rows", len(summaries))
	}
	var predErr *projection.PredictionError
	if !errors.As(err, &predErr) {
		t.Fatalf("Expected PredictionError, got %v", err)
	}
}

func TestUnmappedStateKeepsRow(t *testing.T) {
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Puerto Rico", "Both", ucdCancer),
		rec(2030, "Ohio", "Both", ucdCancer),
	})
	engine := projection.NewEngine(store, stubModel{byUCD: map[string]float64{ucdCancer: 100}})

	summaries, err := engine.Project(context.Background(), scenario.Scenario{}, 2030)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Rollup must keep unmapped states, got %d rows", len(summaries))
	}

	pr := findState(t, summaries, "Puerto Rico")
	if pr.StateAbbrev != "" {
		t.Errorf("Expected empty abbreviation, got %q", pr.StateAbbrev)
	}

	// The rendering helper drops it; the engine output keeps it.
	mappable := projection.Mappable(summaries)
	if len(mappable) != 1 || mappable[0].State != "Ohio" {
		t.Errorf("Mappable should keep only Ohio, got %+v", mappable)
	}
}

func TestComputeTotals(t *testing.T) {
	store := dataset.NewStore([]dataset.MortalityRecord{
		rec(2030, "Ohio", "Both", ucdCancer),
		rec(2030, "Texas", "Both", ucdCancer),
	})
	engine := projection.NewEngine(store, stubModel{byUCD: map[string]float64{ucdCancer: 100}})

	sc, _ := scenario.Validate(map[string]float64{"cancer": -10})
	summaries, err := engine.Project(context.Background(), sc, 2030)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	totals := projection.ComputeTotals(summaries)
	if math.Abs(totals.BaselineTotal-200) > 1e-9 {
		t.Errorf("Expected baseline 200, got %f", totals.BaselineTotal)
	}
	if math.Abs(totals.AdjustedTotal-180) > 1e-9 {
		t.Errorf("Expected adjusted 180, got %f", totals.AdjustedTotal)
	}
	if math.Abs(totals.PctDelta-10) > 1e-9 {
		t.Errorf("Expected 10%% delta, got %f", totals.PctDelta)
	}

	empty := projection.ComputeTotals(nil)
	if empty.PctDelta != 0 {
		t.Errorf("Expected 0 pct delta on empty set, got %f", empty.PctDelta)
	}
}
