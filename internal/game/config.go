package game

import (
	"fmt"
	"os"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavern/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible level generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Level layout and room sizes.
	Level world.GenConfig

	// SightRadius is how far around the player the map gets discovered.
	SightRadius int

	// StarterMap starts the game on the hand-drawn map instead of a
	// generated level.
	StarterMap bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Level:       world.DefaultGenConfig(),
		SightRadius: world.DefaultSightRadius,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies any CAVERN_* variables
// that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"CAVERN_WIDTH", &cfg.Level.Width},
		{"CAVERN_HEIGHT", &cfg.Level.Height},
		{"CAVERN_ROOMS", &cfg.Level.Rooms},
		{"CAVERN_ROOM_MIN_W", &cfg.Level.MinRoomW},
		{"CAVERN_ROOM_MAX_W", &cfg.Level.MaxRoomW},
		{"CAVERN_ROOM_MIN_H", &cfg.Level.MinRoomH},
		{"CAVERN_ROOM_MAX_H", &cfg.Level.MaxRoomH},
		{"CAVERN_SIGHT_RADIUS", &cfg.SightRadius},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}

	if raw := os.Getenv("CAVERN_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("CAVERN_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if raw := os.Getenv("CAVERN_STARTER_MAP"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("CAVERN_STARTER_MAP: %w", err)
		}
		cfg.StarterMap = on
	}

	anchor, err := world.ParseAnchor(os.Getenv("CAVERN_ANCHOR"))
	if err != nil {
		return cfg, fmt.Errorf("CAVERN_ANCHOR: %w", err)
	}
	cfg.Level.Anchor = anchor

	if cfg.SightRadius < 0 {
		return cfg, fmt.Errorf("CAVERN_SIGHT_RADIUS: must not be negative, got %d", cfg.SightRadius)
	}
	return cfg, cfg.Level.Validate()
}

// Attributes describes the run for telemetry. Seed is reported as configured,
// so resolve it first to record a time-based seed.
func (c Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("cavern.seed", c.Seed),
		attribute.Int("cavern.level.width", c.Level.Width),
		attribute.Int("cavern.level.height", c.Level.Height),
		attribute.Int("cavern.level.rooms", c.Level.Rooms),
		attribute.String("cavern.level.anchor", string(c.Level.Anchor)),
		attribute.Bool("cavern.starter_map", c.StarterMap),
	}
}
