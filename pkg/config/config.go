package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel       = "FILTERLAB_LOG_LEVEL"
	EnvWorkers        = "FILTERLAB_WORKERS"
	EnvGaussianRadius = "FILTERLAB_GAUSSIAN_RADIUS"
	EnvGaussianSigma  = "FILTERLAB_GAUSSIAN_SIGMA"
	EnvPreview        = "FILTERLAB_PREVIEW"
	EnvUpdateRepo     = "FILTERLAB_UPDATE_REPO"
)

// Config holds the host settings. Command-line flags override it.
type Config struct {
	LogLevel       string
	Workers        int
	GaussianRadius int
	GaussianSigma  float64
	Preview        bool
	UpdateRepo     string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:       "info",
		Workers:        1,
		GaussianRadius: 3,
		GaussianSigma:  2,
		UpdateRepo:     "Fepozopo/filterlab",
	}
}

// Load reads the given .env files (".env" when none are given) into the
// process environment and returns FromEnv. Missing files are skipped and
// variables already set in the environment win over file values.
func Load(paths ...string) (Config, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return FromEnv()
}

// FromEnv overlays the FILTERLAB_* variables on Default.
func FromEnv() (Config, error) {
	c := Default()
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("invalid %s: must be at least 1, got %d", EnvWorkers, n)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvGaussianRadius); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvGaussianRadius, err)
		}
		c.GaussianRadius = n
	}
	if v, ok := lookup(EnvGaussianSigma); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvGaussianSigma, err)
		}
		c.GaussianSigma = f
	}
	if v, ok := lookup(EnvPreview); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvPreview, err)
		}
		c.Preview = b
	}
	if v, ok := lookup(EnvUpdateRepo); ok {
		c.UpdateRepo = v
	}
	return c, nil
}

// lookup treats blank values as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
