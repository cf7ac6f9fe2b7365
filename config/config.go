// Package config holds the yaml configuration of an index and of the logger it reports to.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/internal/utils"
	"github.com/pkg/errors"
)

// Config - Root configuration structure
type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Index  IndexConfig  `yaml:"index"`
}

// LoggerConfig - Logger configuration
//   - Level is one of DEBUG, INFO, WARN or ERROR (any case)
//   - JSON selects the JSON handler instead of the text handler
type LoggerConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// IndexConfig - Index engine configuration
//   - Engine is the engine kind to build
//   - Order is the fanout of the ordered engine
//   - Slots is the number of records per bucket of the hash engines
//   - InitialSize is the initial number of buckets (exthash, a power of two) or chains (linhash)
type IndexConfig struct {
	Engine      engine.Kind `yaml:"engine"`
	Order       int         `yaml:"order"`
	Slots       int         `yaml:"slots"`
	InitialSize int         `yaml:"initial_size"`
}

// Default - Returns the reference configuration, an ordered index of order 5 and INFO text logging
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level: "INFO",
			JSON:  false,
		},
		Index: DefaultIndex(engine.BPTree),
	}
}

// DefaultIndex - Returns the reference index configuration for an engine kind
func DefaultIndex(kind engine.Kind) IndexConfig {
	return IndexConfig{
		Engine:      kind,
		Order:       conf.DefaultOrder,
		Slots:       conf.DefaultSlots,
		InitialSize: conf.DefaultInitialSize,
	}
}

// Parse - Decodes yaml on top of Default, so omitted fields keep their default values, and validates the result.
//   - data is the yaml document
//
// It returns:
//   - cfg is the resulting configuration
//   - err is a wrapped yaml error or of type engine.ConfigError if validation fails
func Parse(data []byte) (cfg Config, err error) {
	cfg = Default()

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		err = errors.Wrap(err, "parse config")
		return
	}

	err = cfg.Validate()

	return
}

// Load - Reads and parses the yaml file at path. A missing file is not an error, Default is returned instead.
func Load(path string) (cfg Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("config file not found, using default config", "path", path)
			return Default(), nil
		}
		err = errors.Wrapf(err, "read config %s", path)
		return
	}

	cfg, err = Parse(data)
	if err != nil {
		err = errors.WithMessagef(err, "load config %s", path)
	}

	return
}

// Validate - Checks the logger level and the index configuration
func (C Config) Validate() error {
	if _, err := C.Logger.level(); err != nil {
		return err
	}

	return C.Index.Validate()
}

// Validate - Checks the parameters used by the configured engine, returning an engine.ConfigError on failure
func (I IndexConfig) Validate() error {
	if !I.Engine.Valid() {
		return engine.NewConfigError("unknown index engine %q", I.Engine)
	}

	switch I.Engine {
	case engine.BPTree:
		if I.Order < conf.MinOrder {
			return engine.NewConfigError("order must be at least %d, got %d", conf.MinOrder, I.Order)
		}
	case engine.ExtendibleHash, engine.LinearHash:
		if I.Slots <= 0 {
			return engine.NewConfigError("slots must be a positive value higher than 0 (zero), got %d", I.Slots)
		}
		if I.InitialSize <= 0 {
			return engine.NewConfigError("initial size must be a positive value higher than 0 (zero), got %d", I.InitialSize)
		}
		if I.Engine == engine.ExtendibleHash && !utils.IsPowerOfTwo(I.InitialSize) {
			return engine.NewConfigError("initial size must be a power of two, got %d", I.InitialSize)
		}
	}

	return nil
}

// NewLogger - Returns a logger writing to w with the configured level and handler
func (L LoggerConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := L.level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if L.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), nil
}

// level - Parses Level, an empty level means INFO
func (L LoggerConfig) level() (level slog.Level, err error) {
	if L.Level == "" {
		return slog.LevelInfo, nil
	}
	if err = level.UnmarshalText([]byte(strings.ToUpper(L.Level))); err != nil {
		err = engine.NewConfigError("invalid logger level %q", L.Level)
	}

	return
}
