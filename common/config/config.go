// Package config loads and validates the room server's tunable parameters.
package config

import (
	"encoding/json"
	"math"
	"os"
	"time"

	"github.com/cenkalti/backoff"
)

// Config holds every tunable parameter of a room; JSON-loadable, always
// clamped to sane bounds before use.
type Config struct {
	TickRate                int `json:"tickRate"`
	CellSize                int `json:"cellSize"`
	MinHumanPlayersForBots  int `json:"minHumanPlayersForBots"`
	TargetTotalPlayers      int `json:"targetTotalPlayers"`
	MaxHumansPerRoom        int `json:"maxHumansPerRoom"`
	BotDecisionHz           int `json:"botDecisionHz"`
	SpawnMaxAttempts        int `json:"spawnMaxAttempts"`
	Port                    int `json:"port"`
}

// Default returns the built-in, already-clamped configuration.
func Default() *Config {
	cfg := &Config{
		TickRate:               60,
		CellSize:               100,
		MinHumanPlayersForBots: 3,
		TargetTotalPlayers:     4,
		MaxHumansPerRoom:       10,
		BotDecisionHz:          6,
		SpawnMaxAttempts:       40,
		Port:                   8080,
	}
	Clamp(cfg)
	return cfg
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// Clamp enforces hard safety bounds on cfg in place, so callers can accept
// user-provided values (JSON files, CLI flags) while guaranteeing the
// simulation never runs with a nonsensical parameter.
func Clamp(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.TickRate = clampInt(cfg.TickRate, 10, 240)
	cfg.CellSize = clampInt(cfg.CellSize, 10, 1000)
	cfg.MinHumanPlayersForBots = clampInt(cfg.MinHumanPlayersForBots, 0, 32)
	cfg.TargetTotalPlayers = clampInt(cfg.TargetTotalPlayers, 1, 64)
	cfg.MaxHumansPerRoom = clampInt(cfg.MaxHumansPerRoom, 1, 64)
	cfg.BotDecisionHz = clampInt(cfg.BotDecisionHz, 1, 60)
	cfg.SpawnMaxAttempts = clampInt(cfg.SpawnMaxAttempts, 1, 500)
	cfg.Port = clampInt(cfg.Port, 1, 65535)

	if cfg.TargetTotalPlayers < cfg.MinHumanPlayersForBots {
		cfg.TargetTotalPlayers = cfg.MinHumanPlayersForBots
	}
}

// Load reads and clamps a Config from a JSON file at path, retrying with
// exponential backoff to tolerate the common container-orchestration race
// where the file is mounted slightly after process start. Falls back to
// Default() if every attempt fails.
func Load(path string) *Config {
	var cfg Config

	operation := func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &cfg)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxElapsedTime = 1 * time.Second

	if err := backoff.Retry(operation, b); err != nil {
		return Default()
	}

	Clamp(&cfg)
	return &cfg
}

// TickInterval returns the wall-clock duration of a single tick.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(math.Round(float64(time.Second) / float64(c.TickRate)))
}
