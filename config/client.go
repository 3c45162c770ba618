package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// ClientConfig configures the weather widget front end.
type ClientConfig struct {
	// BaseURL is the weather API root; requests go to BaseURL + "/weather".
	BaseURL string `envconfig:"WEATHER_API_BASE_URL" default:"http://localhost:8080/api/v1"`
	// DefaultCity, when set, is fetched on start-up.
	DefaultCity string `envconfig:"WEATHER_DEFAULT_CITY"`
	// GeolocationURL is the IP geolocation endpoint. Empty disables "use my location".
	GeolocationURL string `envconfig:"WEATHER_GEOLOCATION_URL" default:"http://ip-api.com/json"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"warn"`
}

// NewClientConfig reads the widget configuration from the environment and the .env file.
func NewClientConfig() (*ClientConfig, error) {
	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	var cnf ClientConfig
	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}
	cnf.BaseURL = strings.TrimRight(strings.TrimSpace(cnf.BaseURL), "/")
	if cnf.BaseURL == "" {
		return nil, fmt.Errorf("WEATHER_API_BASE_URL must not be blank")
	}
	return &cnf, nil
}
