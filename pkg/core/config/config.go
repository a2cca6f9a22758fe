// Package config loads the application configuration: a YAML file with
// environment variable overrides (env wins, so container deployments can
// skip the file entirely).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Data struct {
		Path string `yaml:"path"`
	} `yaml:"data"`
	Model struct {
		Path string `yaml:"path"`
		URL  string `yaml:"url"`
	} `yaml:"model"`
}

// Load reads the config file if it exists, applies defaults, then applies
// env overrides (PORT, DATA_PATH, MODEL_PATH, MODEL_URL).
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Data.Path = "resources/df_states.csv"
	cfg.Model.Path = "resources/model_coefficients.json"

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad PORT value %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("MODEL_URL"); v != "" {
		cfg.Model.URL = v
	}

	return cfg, nil
}
