// Package config loads the settings of the sp1-intrinsics tooling from flags,
// the environment and an optional YAML file.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

// EnvPrefix prefixes every environment variable, e.g. SP1_INTRINSICS_NUMBERING.
const EnvPrefix = "SP1_INTRINSICS"

// Keys.
const (
	KeyNumbering = "numbering"
	KeyMemcpy    = "memcpy"
	KeyLogLevel  = "log-level"
)

// Config is the resolved tooling configuration.
type Config struct {
	Numbering syscall.Numbering
	Memcpy    memory.Mode
	LogLevel  zapcore.Level
}

// New returns a viper instance with the defaults of this build and
// environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyNumbering, syscall.ActiveNumbering.String())
	v.SetDefault(KeyMemcpy, memory.DefaultMode.String())
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// Load reads file, when not empty, into v and resolves the configuration.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", file)
		}
	}

	numbering, err := syscall.ParseNumbering(v.GetString(KeyNumbering))
	if err != nil {
		return nil, errors.Wrap(err, KeyNumbering)
	}
	mode, err := memory.ParseMode(v.GetString(KeyMemcpy))
	if err != nil {
		return nil, errors.Wrap(err, KeyMemcpy)
	}
	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, errors.Wrap(err, KeyLogLevel)
	}

	return &Config{Numbering: numbering, Memcpy: mode, LogLevel: level}, nil
}

// NewLogger builds the console logger used by the command line tools.
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}
