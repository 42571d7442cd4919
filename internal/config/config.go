package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLab       = "projectile"
	DefaultFPS       = 60
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultDataDir   = "runs"
	DefaultTheme     = "lab"
	DefaultAIModel   = "gemini-2.5-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultQuizSize  = 5
	DefaultTimeout   = 30 * time.Second
	DefaultFailures  = 3
	DefaultCooldown  = 30 * time.Second
)

type Config struct {
	Lab      string             `yaml:"lab"`
	Params   map[string]float64 `yaml:"params,omitempty"`
	FPS      int                `yaml:"fps"`
	Dt       float64            `yaml:"dt"`
	Duration float64            `yaml:"duration"`
	DataDir  string             `yaml:"data_dir"`
	Theme    string             `yaml:"theme"`
	AI       AIConfig           `yaml:"ai"`
}

// AIConfig configures the tutor backend. The key itself is never stored in
// the file, only the name of the environment variable holding it.
type AIConfig struct {
	Model       string        `yaml:"model"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Timeout     time.Duration `yaml:"timeout"`
	QuizSize    int           `yaml:"quiz_size"`
	MaxFailures int           `yaml:"max_failures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

func DefaultConfig() *Config {
	return &Config{
		Lab:      DefaultLab,
		FPS:      DefaultFPS,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		DataDir:  DefaultDataDir,
		Theme:    DefaultTheme,
		AI: AIConfig{
			Model:       DefaultAIModel,
			APIKeyEnv:   DefaultAPIKeyEnv,
			Timeout:     DefaultTimeout,
			QuizSize:    DefaultQuizSize,
			MaxFailures: DefaultFailures,
			Cooldown:    DefaultCooldown,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// APIKey reads the tutor key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.AI.APIKeyEnv)
}

// WithPreset returns a copy of c with the preset's lab and parameters laid
// over it. Parameters already in c win over the preset's.
func (c *Config) WithPreset(p *Config) *Config {
	out := *c
	if p == nil {
		return &out
	}
	out.Lab = p.Lab
	out.Params = make(map[string]float64, len(p.Params)+len(c.Params))
	for k, v := range p.Params {
		out.Params[k] = v
	}
	if c.Lab == p.Lab {
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	if p.Duration > 0 {
		out.Duration = p.Duration
	}
	return &out
}
