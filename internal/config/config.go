// Package config loads application settings and the rule set from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	DBPath            string `yaml:"db_path"`
	LogLevel          string `yaml:"log_level"`
	LogPretty         bool   `yaml:"log_pretty"`
	CompressSnapshots bool   `yaml:"compress_snapshots"`
	Rules             Rules  `yaml:"rules"`
}

// Rules is the file form of the rule set. Keys are resource, piece and
// card names; the game package parses them.
type Rules struct {
	MinPlayers         int                       `yaml:"min_players"`
	MaxPlayers         int                       `yaml:"max_players"`
	Pieces             map[string]int            `yaml:"pieces"`
	Costs              map[string]map[string]int `yaml:"costs"`
	BankResources      int                       `yaml:"bank_resources"`
	GrowthDeck         map[string]int            `yaml:"growth_deck"`
	Tiles              map[string]int            `yaml:"tiles"`
	ActivationNumbers  []int                     `yaml:"activation_numbers"`
	PointsToWin        int                       `yaml:"points_to_win"`
	LongestRoadMinimum int                       `yaml:"longest_road_minimum"`
	LargestArmyMinimum int                       `yaml:"largest_army_minimum"`
	DiscardThreshold   int                       `yaml:"discard_threshold"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		DBPath:            "data/natak.db",
		LogLevel:          "info",
		CompressSnapshots: true,
		Rules:             DefaultRules(),
	}
}

// DefaultRules returns the standard four-player rule set.
func DefaultRules() Rules {
	return Rules{
		MinPlayers: 3,
		MaxPlayers: 4,
		Pieces: map[string]int{
			"road":    15,
			"village": 5,
			"town":    4,
		},
		Costs: map[string]map[string]int{
			"road":        {"wood": 1, "clay": 1},
			"village":     {"wood": 1, "clay": 1, "animal": 1, "food": 1},
			"town":        {"food": 2, "metal": 3},
			"growth_card": {"animal": 1, "food": 1, "metal": 1},
		},
		BankResources: 19,
		GrowthDeck: map[string]int{
			"soldier":       14,
			"roaming":       2,
			"gatherer":      2,
			"wealth":        2,
			"victory_point": 5,
		},
		Tiles: map[string]int{
			"none":   1,
			"wood":   4,
			"clay":   3,
			"animal": 4,
			"food":   4,
			"metal":  3,
		},
		ActivationNumbers:  []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12},
		PointsToWin:        10,
		LongestRoadMinimum: 5,
		LargestArmyMinimum: 3,
		DiscardThreshold:   7,
	}
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("NATAK_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("NATAK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("NATAK_LOG_PRETTY"); v == "1" || v == "true" {
		c.LogPretty = true
	}
}
