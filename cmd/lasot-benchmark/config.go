package main

import (
	"os"
	"strings"

	"github.com/LdDl/trackbench/eval"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Config controls a benchmark run
type Config struct {
	Dataset       string
	Trackers      []string
	Visualization bool
	LogLevel      string
	MetricsAddr   string
}

// DefaultConfig returns settings of the reference run: original dataset folder and all trackers
func DefaultConfig() Config {
	return Config{
		Dataset:  "LaSOTTesting",
		LogLevel: "info",
	}
}

// LoadConfig reads JSON file and overrides only the keys present in it
func LoadConfig(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "Can't read config")
	}
	if !gjson.ValidBytes(data) {
		return cfg, errors.Errorf("config '%s' is not valid JSON", path)
	}
	if v := gjson.GetBytes(data, "dataset"); v.Exists() {
		cfg.Dataset = v.String()
	}
	if v := gjson.GetBytes(data, "trackers"); v.Exists() {
		if !v.IsArray() {
			return cfg, errors.New("'trackers' should be an array of names")
		}
		cfg.Trackers = cfg.Trackers[:0:0]
		for _, name := range v.Array() {
			cfg.Trackers = append(cfg.Trackers, name.String())
		}
	}
	if v := gjson.GetBytes(data, "visualization"); v.Exists() {
		cfg.Visualization = v.Bool()
	}
	if v := gjson.GetBytes(data, "log_level"); v.Exists() {
		cfg.LogLevel = v.String()
	}
	if v := gjson.GetBytes(data, "metrics_addr"); v.Exists() {
		cfg.MetricsAddr = v.String()
	}
	return cfg, nil
}

// ParseTrackerList splits comma separated names
func ParseTrackerList(value string) []string {
	names := []string{}
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Kinds converts tracker names. Empty list means trackers of the reference table
func (cfg Config) Kinds() ([]eval.Kind, error) {
	if len(cfg.Trackers) == 0 {
		return eval.DefaultKinds(), nil
	}
	kinds := make([]eval.Kind, 0, len(cfg.Trackers))
	for _, name := range cfg.Trackers {
		kind, err := eval.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
