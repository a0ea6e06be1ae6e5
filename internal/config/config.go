package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyListenAddr  = errors.New("listen address is not specified")
	ErrNegativeDuration = errors.New("duration must not be negative")
)

const (
	defaultThinkDelay    = 500 * time.Millisecond
	defaultIdleTimeout   = 10 * time.Minute
	defaultCleanupPeriod = time.Minute
)

type config struct {
	ListenAddr    string        `yaml:"listen_addr"`
	ThinkDelay    time.Duration `yaml:"think_delay"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	CleanupPeriod time.Duration `yaml:"cleanup_period"`
	Seed          uint64        `yaml:"seed"`
}

func New(cfgPath string) (config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := config{
		ThinkDelay:    defaultThinkDelay,
		IdleTimeout:   defaultIdleTimeout,
		CleanupPeriod: defaultCleanupPeriod,
	}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return config{}, errors.WithMessage(err, "decode yaml config")
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.ListenAddr == "" {
		return ErrEmptyListenAddr
	}
	for name, d := range map[string]time.Duration{
		"think_delay":    c.ThinkDelay,
		"idle_timeout":   c.IdleTimeout,
		"cleanup_period": c.CleanupPeriod,
	} {
		if d < 0 {
			return errors.WithMessagef(ErrNegativeDuration, "'%s'", name)
		}
	}
	return nil
}
