package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultEnvFile    = ".env"

	ProviderOpenWeatherMap = "openweathermap"
	ProviderOpenMeteo      = "open-meteo"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Weather WeatherConfig `yaml:"weather"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
}

type WeatherConfig struct {
	Provider string `yaml:"provider" envconfig:"PROVIDER"`
	APIKey   string `yaml:"api_key,omitempty" envconfig:"API_KEY"`
	// Timeout for upstream provider calls, in seconds.
	Timeout  int           `yaml:"timeout" envconfig:"TIMEOUT"`
	CacheTTL time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`
}

// RedisConfig.URL empty disables the snapshot cache.
type RedisConfig struct {
	URL string `yaml:"url" envconfig:"URL"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn" envconfig:"DSN"`
}

// ConfigProvider loads and validates the server configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file and environment variables, in that order.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path, envFile: DefaultEnvFile}
}

// NewConfig loads the configuration from CONFIG_PATH, or config/config.yaml.
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cnf, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-api",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Weather: WeatherConfig{
			Provider: ProviderOpenMeteo,
			Timeout:  10,
			CacheTTL: 15 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := loadEnvFile(p.envFile); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile overlays the YAML file on config. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(config *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var problems []string

	if strings.TrimSpace(config.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if config.Server.ReadTimeout < 0 || config.Server.WriteTimeout < 0 || config.Server.IdleTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}

	switch config.Weather.Provider {
	case ProviderOpenMeteo:
	case ProviderOpenWeatherMap:
		if strings.TrimSpace(config.Weather.APIKey) == "" {
			problems = append(problems, "weather.api_key is required for openweathermap")
		}
	default:
		problems = append(problems, fmt.Sprintf("weather.provider %q is not supported", config.Weather.Provider))
	}
	if config.Weather.Timeout <= 0 {
		problems = append(problems, "weather.timeout must be positive")
	}
	if config.Weather.CacheTTL < 0 {
		problems = append(problems, "weather.cache_ttl must not be negative")
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is invalid", config.Log.Level))
	}
	if config.Log.Format != "json" && config.Log.Format != "console" {
		problems = append(problems, fmt.Sprintf("log.format %q must be json or console", config.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// ProviderTimeout is the upstream call timeout as a duration.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Weather.Timeout) * time.Second
}

// loadEnvFile preloads variables from a dotenv file without overriding the real environment.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
