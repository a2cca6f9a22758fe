package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ypll_explorer/pkg/core/dataset"
	"ypll_explorer/pkg/core/predict"
	"ypll_explorer/pkg/core/projection"
	"ypll_explorer/pkg/core/scenario"
)

func main() {
	godotenv.Load()

	dataPath := flag.String("data", "resources/df_states.csv", "path to the mortality dataset CSV")
	modelPath := flag.String("model", "resources/model_coefficients.json", "path to the trained model coefficients")
	presetPath := flag.String("scenario", "", "path to an HJSON scenario preset")
	year := flag.Int("year", 0, "target year (overrides the preset's year)")
	covariateMode := flag.Bool("covariates", false, "run the feature-change mode instead of cause percentages")
	flag.Parse()

	if *presetPath == "" {
		fmt.Println("Usage: pipeline -scenario <preset.hjson> [-year N] [-data path] [-model path] [-covariates]")
		os.Exit(1)
	}

	preset, sc, cs, err := scenario.LoadPreset(*presetPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load scenario preset: %v\n", err)
		os.Exit(1)
	}

	targetYear := preset.Year
	if *year != 0 {
		targetYear = *year
	}

	ds, err := dataset.LoadCached(*dataPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	model, err := predict.LoadLinearModel(*modelPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load model: %v\n", err)
		os.Exit(1)
	}

	engine := projection.NewEngine(ds, model)
	ctx := context.Background()

	var summaries []projection.StateSummary
	if *covariateMode {
		fmt.Printf("[PROJECT] Running covariate scenario %q for %d (%d columns)\n",
			preset.Name, targetYear, len(cs))
		summaries, err = engine.ProjectCovariates(ctx, cs, targetYear)
	} else {
		fmt.Printf("[PROJECT] Running cause scenario %q for %d (%d causes)\n",
			preset.Name, targetYear, len(sc))
		summaries, err = engine.Project(ctx, sc, targetYear)
	}
	if err != nil {
		fmt.Printf("[FATAL] Projection failed: %v\n", err)
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Printf("No records for year %d. Available years: %v\n", targetYear, ds.Years())
		return
	}

	fmt.Printf("\n%-22s %-4s %16s %16s %14s\n", "State", "Abbr", "Baseline YPLL", "Adjusted YPLL", "Years Gained")
	for _, s := range summaries {
		abbrev := s.StateAbbrev
		if abbrev == "" {
			abbrev = "--"
		}
		fmt.Printf("%-22s %-4s %16.1f %16.1f %14.1f\n",
			s.State, abbrev, s.BaselineTotal, s.AdjustedTotal, s.YearsGained)
	}

	totals := projection.ComputeTotals(summaries)
	fmt.Printf("\nTotal baseline:  %16.1f\n", totals.BaselineTotal)
	fmt.Printf("Total adjusted:  %16.1f\n", totals.AdjustedTotal)
	fmt.Printf("Years gained:    %16.1f (%.1f%%)\n", totals.YearsGained, totals.PctDelta)
}
