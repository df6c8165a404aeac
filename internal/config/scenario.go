package config

import (
	"cashflow-mcp/internal/simulation"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// LoadScenario reads a scenario file (YAML, JSON or TOML) layered over the default scenario.
// An empty path returns the default scenario.
func LoadScenario(path string) (simulation.Scenario, error) {
	scenario := simulation.DefaultScenario()
	if path == "" {
		return scenario, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return scenario, errors.Wrapf(err, "reading scenario file %s", path)
	}

	// Lists replace the defaults instead of merging index by index.
	if v.IsSet("growth_factors") {
		scenario.GrowthFactors = nil
	}

	err := v.Unmarshal(&scenario, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return scenario, errors.Wrapf(err, "decoding scenario file %s", path)
	}

	// A scenario that only changes the window keeps growth neutral for the extra years.
	if !v.IsSet("growth_factors") && len(scenario.GrowthFactors) != scenario.Years {
		scenario.GrowthFactors = neutralGrowth(scenario.Years)
	}

	if err := scenario.Validate(); err != nil {
		return scenario, errors.Wrap(err, path)
	}

	log.Info().
		Str("path", path).
		Str("scenario", scenario.Name).
		Int("start_year", scenario.StartYear).
		Int("years", scenario.Years).
		Msg("Loaded scenario")
	return scenario, nil
}

func neutralGrowth(years int) []float64 {
	if years <= 0 {
		return nil
	}
	out := make([]float64, years)
	for i := range out {
		out[i] = 1
	}
	return out
}
