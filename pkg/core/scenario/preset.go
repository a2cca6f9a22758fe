package scenario

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// Preset is a saved scenario file. Presets are HJSON so analysts can keep
// comments next to the assumptions they encode.
type Preset struct {
	Name       string             `json:"name"`
	Year       int                `json:"year"`
	Causes     map[string]float64 `json:"causes"`
	Covariates map[string]float64 `json:"covariates"`
}

// LoadPreset reads and validates a preset file. The returned Scenario and
// CovariateScenario have already passed the same validation the API applies.
func LoadPreset(path string) (*Preset, Scenario, CovariateScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read preset: %w", err)
	}

	var p Preset
	if err := hjson.Unmarshal(data, &p); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}

	sc, err := Validate(p.Causes)
	if err != nil {
		return nil, nil, nil, err
	}
	cs, err := ValidateCovariates(p.Covariates)
	if err != nil {
		return nil, nil, nil, err
	}

	return &p, sc, cs, nil
}
