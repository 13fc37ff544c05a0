package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/pbd/physics"
)

// Environment keys, each overriding one file value
const (
	EnvIterations = "PBD_ITERATIONS"
	EnvDamping    = "PBD_DAMPING"
	EnvStep       = "PBD_STEP"
	EnvMaxFrame   = "PBD_MAX_FRAME"
	EnvGravity    = "PBD_GRAVITY"
	EnvBoundary   = "PBD_BOUNDARY"
	EnvReject     = "PBD_REJECT"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// File mirrors the TOML layout; absent keys keep the defaults
type File struct {
	Solver struct {
		Iterations *int     `toml:"iterations"`
		Damping    *float64 `toml:"damping"`
	} `toml:"solver"`
	Clock struct {
		Step     *float64 `toml:"step"`
		MaxFrame *float64 `toml:"max_frame"`
	} `toml:"clock"`
	Collision struct {
		Boundary string `toml:"boundary,omitempty"`
		Reject   string `toml:"reject,omitempty"`
	} `toml:"collision"`
	World struct {
		Gravity *float64 `toml:"gravity"`
	} `toml:"world"`
}

// Load builds a physics config with priority: environment > .env > TOML file at path > defaults
// An empty path skips the file; a named file that does not exist is an error
// Overrides are reported to logger; nil discards them
func Load(path string, logger *log.Logger) (physics.Config, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cfg := physics.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		logger.Printf("config: loaded %s", path)
	}

	// Existing environment wins over .env entries
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
	}

	if err := applyEnv(&cfg, logger); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg; unknown keys are rejected
func Decode(data []byte, cfg *physics.Config) error {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("%w: %w", physics.ErrInvalidConfig, err)
	}

	if f.Solver.Iterations != nil {
		cfg.SolverIterations = *f.Solver.Iterations
	}
	if f.Solver.Damping != nil {
		cfg.Damping = *f.Solver.Damping
	}
	if f.Clock.Step != nil {
		cfg.Step = *f.Clock.Step
	}
	if f.Clock.MaxFrame != nil {
		cfg.MaxFrameTime = *f.Clock.MaxFrame
	}
	if f.World.Gravity != nil {
		cfg.Gravity = *f.World.Gravity
	}
	if f.Collision.Boundary != "" {
		b, err := physics.ParseBoundary(f.Collision.Boundary)
		if err != nil {
			return err
		}
		cfg.Collision.Boundary = b
	}
	if f.Collision.Reject != "" {
		r, err := physics.ParseReject(f.Collision.Reject)
		if err != nil {
			return err
		}
		cfg.Collision.Reject = r
	}
	return nil
}

// Encode renders cfg in the file layout Decode reads
func Encode(cfg physics.Config) ([]byte, error) {
	var f File
	f.Solver.Iterations = &cfg.SolverIterations
	f.Solver.Damping = &cfg.Damping
	f.Clock.Step = &cfg.Step
	f.Clock.MaxFrame = &cfg.MaxFrameTime
	f.Collision.Boundary = cfg.Collision.Boundary.String()
	f.Collision.Reject = cfg.Collision.Reject.String()
	f.World.Gravity = &cfg.Gravity
	return toml.Marshal(f)
}

func applyEnv(cfg *physics.Config, logger *log.Logger) error {
	var err error

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvDamping, &cfg.Damping},
		{EnvStep, &cfg.Step},
		{EnvMaxFrame, &cfg.MaxFrameTime},
		{EnvGravity, &cfg.Gravity},
	}
	for _, f := range floats {
		prev := *f.dst
		if *f.dst, err = getEnvFloat(f.key, prev); err != nil {
			return err
		}
		if *f.dst != prev {
			logger.Printf("config: %s=%g", f.key, *f.dst)
		}
	}

	prevIter := cfg.SolverIterations
	if cfg.SolverIterations, err = getEnvInt(EnvIterations, prevIter); err != nil {
		return err
	}
	if cfg.SolverIterations != prevIter {
		logger.Printf("config: %s=%d", EnvIterations, cfg.SolverIterations)
	}

	if s := getEnv(EnvBoundary, ""); s != "" {
		if cfg.Collision.Boundary, err = physics.ParseBoundary(s); err != nil {
			return fmt.Errorf("%s: %w", EnvBoundary, err)
		}
	}
	if s := getEnv(EnvReject, ""); s != "" {
		if cfg.Collision.Reject, err = physics.ParseReject(s); err != nil {
			return fmt.Errorf("%s: %w", EnvReject, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s=%q: %w", key, value, physics.ErrInvalidConfig)
	}
	return intVal, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%s=%q: %w", key, value, physics.ErrInvalidConfig)
	}
	return floatVal, nil
}
