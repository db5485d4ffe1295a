package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	NumFloors         = 8
	DoorCycleDuration = 500 * time.Millisecond
	PerFloorTravel    = 500 * time.Millisecond
	RenderInterval    = 50 * time.Millisecond
	LogLevel          = "debug"
)

// Cars are the ids of the cars started when the config file names none.
var Cars = []string{"left", "right"}

// Config holds the per-installation parameters. Every car gets the same copy.
type Config struct {
	TotalFloors    int           `toml:"total_floors"`
	DoorCycle      time.Duration `toml:"door_cycle"`
	PerFloorTravel time.Duration `toml:"per_floor_travel"`
	RenderInterval time.Duration `toml:"render_interval"`
	Cars           []string      `toml:"cars"`
	LogLevel       string        `toml:"log_level"`
	LogFile        string        `toml:"log_file"`
}

func Default() Config {
	return Config{
		TotalFloors:    NumFloors,
		DoorCycle:      DoorCycleDuration,
		PerFloorTravel: PerFloorTravel,
		RenderInterval: RenderInterval,
		Cars:           append([]string(nil), Cars...),
		LogLevel:       LogLevel,
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("Unknown config key ignored", "file", path, "key", key.String())
	}
	for i, id := range cfg.Cars {
		cfg.Cars[i] = strings.ToLower(strings.TrimSpace(id))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.TotalFloors < 2 {
		errs = append(errs, fmt.Errorf("total_floors must be at least 2, got %d", cfg.TotalFloors))
	}
	if cfg.DoorCycle <= 0 {
		errs = append(errs, fmt.Errorf("door_cycle must be positive, got %v", cfg.DoorCycle))
	}
	if cfg.PerFloorTravel <= 0 {
		errs = append(errs, fmt.Errorf("per_floor_travel must be positive, got %v", cfg.PerFloorTravel))
	}
	if cfg.RenderInterval <= 0 {
		errs = append(errs, fmt.Errorf("render_interval must be positive, got %v", cfg.RenderInterval))
	}
	if len(cfg.Cars) == 0 {
		errs = append(errs, errors.New("cars must name at least one car"))
	}
	seen := make(map[string]bool, len(cfg.Cars))
	for _, id := range cfg.Cars {
		if id == "" {
			errs = append(errs, errors.New("car id must not be empty"))
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("car id %q listed twice", id))
		}
		seen[id] = true
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps the log_level setting to a slog level. Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
