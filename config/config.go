package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lanes/meta"
	"lanes/render"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Config is the experiment configuration. Zero values in a file keep the
// defaults.
type Config struct {
	Car1Model           string        `yaml:"car1_model"`
	Car2Model           string        `yaml:"car2_model"`
	BaseModel           string        `yaml:"base_model"`
	DistillModel        string        `yaml:"distill_model"`
	Iterations          int           `yaml:"iterations"`
	SameSideProbability float64       `yaml:"same_side_probability"`
	Seed                uint64        `yaml:"seed"`
	APIKey              string        `yaml:"api_key"`
	BaseURL             string        `yaml:"base_url"`
	Temperature         float64       `yaml:"temperature"`
	MaxTokens           int           `yaml:"max_tokens"`
	Timeout             time.Duration `yaml:"timeout"`
	Retries             int           `yaml:"retries"`
	RetryBaseDelay      time.Duration `yaml:"retry_base_delay"`
	RetryMaxDelay       time.Duration `yaml:"retry_max_delay"`
	OnError             string        `yaml:"on_error"`
	OutputDir           string        `yaml:"output_dir"`
	Render              bool          `yaml:"render"`
	Frames              int           `yaml:"frames"`
	LogLevel            string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		BaseModel:           meta.BASE_MODEL,
		DistillModel:        meta.DISTILL_MODEL,
		Iterations:          meta.ITERATIONS,
		SameSideProbability: meta.SAME_SIDE_PROBABILITY,
		Temperature:         0.7,
		MaxTokens:           256,
		Timeout:             meta.TIMEOUT,
		Retries:             meta.RETRIES,
		RetryBaseDelay:      500 * time.Millisecond,
		RetryMaxDelay:       8 * time.Second,
		OnError:             OnErrorAbort,
		OutputDir:           meta.OUTPUT_DIR,
		Render:              true,
		Frames:              render.DefaultFrames,
		LogLevel:            "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("unsupported config file extension %s: %w", ext, ErrInvalidConfig)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w: %w", path, ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ApplyEnv fills unset secrets and the log level from the environment.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if level := os.Getenv("LANES_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// Attempts is the number of calls made per model request: the first one plus
// the configured retries.
func (c Config) Attempts() int {
	return c.Retries + 1
}

func (c Config) Validate() error {
	var errs []string
	if c.Car1Model == "" || c.Car2Model == "" {
		errs = append(errs, "both car models are required")
	}
	if c.BaseModel == "" {
		errs = append(errs, "base model is required")
	}
	if c.DistillModel == "" {
		errs = append(errs, "distill model is required")
	}
	if c.Iterations < 1 {
		errs = append(errs, "iterations must be positive")
	}
	if c.SameSideProbability < 0 || c.SameSideProbability > 1 {
		errs = append(errs, "same_side_probability must be within [0, 1]")
	}
	if c.Timeout <= 0 {
		errs = append(errs, "timeout must be positive")
	}
	if c.Retries < 0 {
		errs = append(errs, "retries must not be negative")
	}
	if c.OnError != OnErrorAbort && c.OnError != OnErrorSkip {
		errs = append(errs, fmt.Sprintf("on_error must be %q or %q", OnErrorAbort, OnErrorSkip))
	}
	if c.Frames < 1 {
		errs = append(errs, "frames must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
