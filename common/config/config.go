package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
)

type (
	// Config holds the server options consulted at task admission and resume
	// time. A running task never re-reads configuration mid-flight; the
	// scheduler captures the values it needs when the task is created or
	// promoted back to runnable.
	Config struct {
		// Workers is the size of the task execution pool.
		Workers int `yaml:"workers"`
		// RunnableQueueSize bounds the channel feeding the pool.
		RunnableQueueSize int `yaml:"runnableQueueSize"`
		// Foreground is the budget for interactive and server-originated
		// tasks; Background applies to forked, suspended, reading and
		// worker-wait tasks.
		Foreground KindBudget `yaml:"foreground"`
		Background KindBudget `yaml:"background"`
		// MaxStackDepth is the call-depth ceiling, fixed per task at
		// creation.
		MaxStackDepth int `yaml:"maxStackDepth"`
		// OwnerQueuedTaskLimit caps queued tasks per owner. Zero disables
		// the cap.
		OwnerQueuedTaskLimit int `yaml:"ownerQueuedTaskLimit"`
		// ConflictRetry bounds re-execution of tasks whose commits keep
		// conflicting.
		ConflictRetry ConflictRetry `yaml:"conflictRetry"`
	}

	// KindBudget is the resource budget for one task class.
	KindBudget struct {
		Ticks   int `yaml:"ticks"`
		Seconds int `yaml:"seconds"`
	}

	// ConflictRetry configures the backoff policy applied between
	// whole-task re-executions after commit conflicts.
	ConflictRetry struct {
		MaximumAttempts    int     `yaml:"maximumAttempts"`
		InitialIntervalMS  int     `yaml:"initialIntervalMs"`
		MaximumIntervalMS  int     `yaml:"maximumIntervalMs"`
		BackoffCoefficient float64 `yaml:"backoffCoefficient"`
	}
)

// Default returns the stock server options.
func Default() *Config {
	return &Config{
		Workers:           8,
		RunnableQueueSize: 1024,
		Foreground: KindBudget{
			Ticks:   60000,
			Seconds: 5,
		},
		Background: KindBudget{
			Ticks:   30000,
			Seconds: 3,
		},
		MaxStackDepth:        50,
		OwnerQueuedTaskLimit: 128,
		ConflictRetry: ConflictRetry{
			MaximumAttempts:    5,
			InitialIntervalMS:  10,
			MaximumIntervalMS:  1000,
			BackoffCoefficient: 2,
		},
	}
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Workers <= 0 {
		result = multierror.Append(result, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.RunnableQueueSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("runnableQueueSize must be positive, got %d", c.RunnableQueueSize))
	}
	if err := c.Foreground.validate("foreground"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Background.validate("background"); err != nil {
		result = multierror.Append(result, err)
	}
	if c.MaxStackDepth <= 0 {
		result = multierror.Append(result, fmt.Errorf("maxStackDepth must be positive, got %d", c.MaxStackDepth))
	}
	if c.OwnerQueuedTaskLimit < 0 {
		result = multierror.Append(result, fmt.Errorf("ownerQueuedTaskLimit must not be negative, got %d", c.OwnerQueuedTaskLimit))
	}
	if c.ConflictRetry.MaximumAttempts < 1 {
		result = multierror.Append(result, fmt.Errorf("conflictRetry.maximumAttempts must be at least 1, got %d", c.ConflictRetry.MaximumAttempts))
	}
	if c.ConflictRetry.BackoffCoefficient < 1 {
		result = multierror.Append(result, fmt.Errorf("conflictRetry.backoffCoefficient must be at least 1, got %g", c.ConflictRetry.BackoffCoefficient))
	}
	return result.ErrorOrNil()
}

func (b KindBudget) validate(name string) error {
	var result *multierror.Error
	if b.Ticks <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s.ticks must be positive, got %d", name, b.Ticks))
	}
	if b.Seconds <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s.seconds must be positive, got %d", name, b.Seconds))
	}
	return result.ErrorOrNil()
}

// Duration returns the wall-clock budget as a time.Duration.
func (b KindBudget) Duration() time.Duration {
	return time.Duration(b.Seconds) * time.Second
}

// InitialInterval returns the first retry delay.
func (r ConflictRetry) InitialInterval() time.Duration {
	return time.Duration(r.InitialIntervalMS) * time.Millisecond
}

// MaximumInterval returns the retry delay cap.
func (r ConflictRetry) MaximumInterval() time.Duration {
	return time.Duration(r.MaximumIntervalMS) * time.Millisecond
}
