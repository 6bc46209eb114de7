package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"gopkg.in/yaml.v3"
)

const (
	BackendVader       = "vader"
	BackendHuggingFace = "huggingface"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Gauge      GaugeConfig      `yaml:"gauge"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	DefaultDate string `yaml:"default_date"`
}

type ClassifierConfig struct {
	Backend  string        `yaml:"backend"`
	Model    string        `yaml:"model"`
	Endpoint string        `yaml:"endpoint"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout"`
}

type GaugeConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	FontPath string `yaml:"font_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// envOverrides lists the environment variables that override file settings.
// Unset variables leave the file value untouched.
type envOverrides struct {
	Port               string        `env:"PORT"`
	DefaultDate        string        `env:"DEFAULT_DATE"`
	ClassifierBackend  string        `env:"CLASSIFIER_BACKEND"`
	ClassifierModel    string        `env:"HF_MODEL"`
	ClassifierEndpoint string        `env:"HF_ENDPOINT"`
	ClassifierToken    string        `env:"HF_TOKEN"`
	ClassifierTimeout  time.Duration `env:"CLASSIFIER_TIMEOUT"`
	GaugeFontPath      string        `env:"GAUGE_FONT_PATH"`
	LogLevel           string        `env:"LOG_LEVEL"`
	LogFormat          string        `env:"LOG_FORMAT"`
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			DefaultDate: "1995-01-01",
		},
		Classifier: ClassifierConfig{
			Backend:  BackendVader,
			Model:    "distilbert-base-uncased-finetuned-sst-2-english",
			Endpoint: "https://api-inference.huggingface.co/models",
			Timeout:  30 * time.Second,
		},
		Gauge: GaugeConfig{
			Width:  600,
			Height: 400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if any),
// a .env file and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var overrides envOverrides
	if err := env.Load(&overrides, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	overrides.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o envOverrides) apply(cfg *Config) {
	setString(&cfg.Server.Port, o.Port)
	setString(&cfg.Server.DefaultDate, o.DefaultDate)
	setString(&cfg.Classifier.Backend, o.ClassifierBackend)
	setString(&cfg.Classifier.Model, o.ClassifierModel)
	setString(&cfg.Classifier.Endpoint, o.ClassifierEndpoint)
	setString(&cfg.Classifier.Token, o.ClassifierToken)
	setString(&cfg.Gauge.FontPath, o.GaugeFontPath)
	setString(&cfg.Logging.Level, o.LogLevel)
	setString(&cfg.Logging.Format, o.LogFormat)
	if o.ClassifierTimeout > 0 {
		cfg.Classifier.Timeout = o.ClassifierTimeout
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks the settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	switch c.Classifier.Backend {
	case BackendVader:
	case BackendHuggingFace:
		if c.Classifier.Token == "" {
			return &ConfigError{Message: "classifier token is required for the huggingface backend"}
		}
		if c.Classifier.Model == "" || c.Classifier.Endpoint == "" {
			return &ConfigError{Message: "classifier model and endpoint are required for the huggingface backend"}
		}
	default:
		return &ConfigError{
			Message: "unknown classifier backend",
			Details: []string{c.Classifier.Backend},
		}
	}

	if _, err := time.Parse("2006-01-02", c.Server.DefaultDate); err != nil {
		return &ConfigError{Message: "default_date must be YYYY-MM-DD", Details: []string{c.Server.DefaultDate}}
	}
	if c.Gauge.Width <= 0 || c.Gauge.Height <= 0 {
		return &ConfigError{Message: "gauge width and height must be positive"}
	}
	return nil
}

// GetConfigPath returns config.yaml from the working directory or next to the
// executable, or "" when neither exists.
func GetConfigPath() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}

	if exe, err := os.Executable(); err == nil {
		configPath := filepath.Join(filepath.Dir(exe), "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	return ""
}

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
	Details []string
}

func (e *ConfigError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, ", ")
	}
	return e.Message
}
