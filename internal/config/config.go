package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/firesync/firesync/internal/models"
)

// RoundSpec declares one round of the economy loop: the catalogue index
// range [Start, End) offered that round and the budget increment granted
// before purchase. Round 1's increment is ignored in favour of
// StartingBudget.
type RoundSpec struct {
	Start     int `yaml:"start" json:"start"`
	End       int `yaml:"end" json:"end"`
	Increment int `yaml:"increment" json:"increment"`
}

func (r RoundSpec) Size() int { return r.End - r.Start }

// Config holds the game tuning knobs. The zero value is not usable; start
// from Default.
type Config struct {
	StartingBudget int         `yaml:"starting_budget"`
	RevealDelayMS  int         `yaml:"reveal_delay_ms"`
	Rounds         []RoundSpec `yaml:"rounds"`
}

func (c Config) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}

// Default reproduces the original game's numbers: $900 opening budget,
// increments 1700/2000/2600/3500, tiers of 10/7/6/7/4 weapons, one second
// reveal pause.
func Default() Config {
	return Config{
		StartingBudget: 900,
		RevealDelayMS:  1000,
		Rounds: []RoundSpec{
			{Start: 0, End: 10, Increment: 0},
			{Start: 10, End: 17, Increment: 1700},
			{Start: 17, End: 23, Increment: 2000},
			{Start: 23, End: 30, Increment: 2600},
			{Start: 30, End: 34, Increment: 3500},
		},
	}
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults are returned so the game runs without any config present.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the round table: exactly five rounds, contiguous
// ascending non-overlapping index ranges inside the catalogue capacity, and
// sane budget numbers.
func (c Config) Validate() error {
	if c.StartingBudget <= 0 {
		return fmt.Errorf("config: starting_budget must be positive, got %d", c.StartingBudget)
	}
	if c.RevealDelayMS < 0 {
		return fmt.Errorf("config: reveal_delay_ms must not be negative, got %d", c.RevealDelayMS)
	}
	if len(c.Rounds) != 5 {
		return fmt.Errorf("config: expected 5 rounds, got %d", len(c.Rounds))
	}
	prevEnd := 0
	for i, r := range c.Rounds {
		if r.Start != prevEnd {
			return fmt.Errorf("config: round %d starts at %d, want %d (tiers must be contiguous)", i+1, r.Start, prevEnd)
		}
		if r.End <= r.Start {
			return fmt.Errorf("config: round %d has empty tier [%d,%d)", i+1, r.Start, r.End)
		}
		if r.End > models.MaxWeapons {
			return fmt.Errorf("config: round %d tier end %d exceeds catalogue capacity %d", i+1, r.End, models.MaxWeapons)
		}
		if r.Increment < 0 {
			return fmt.Errorf("config: round %d increment must not be negative", i+1)
		}
		prevEnd = r.End
	}
	return nil
}

// CheckCatalog rejects a catalogue too short for the configured tiers, so a
// truncated data file fails at startup rather than mid-game.
func (c Config) CheckCatalog(cat *models.Catalog) error {
	need := c.Rounds[len(c.Rounds)-1].End
	if cat.Len() < need {
		return fmt.Errorf("config: catalogue has %d weapons, round table needs %d", cat.Len(), need)
	}
	return nil
}
