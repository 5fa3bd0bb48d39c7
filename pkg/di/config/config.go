package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL          string
	Backend          string
	MaxSearchResults int
	ReadmePath       string

	OverpassURL     string
	OverpassTimeout time.Duration
	OverpassRPS     float64
	Contact         string

	WarehousePath string
	KVPath        string
}

// New reads config.yaml from the working directory when present; environment variables
// override it.
func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("BASE_URL", "https://places.pub")
	viper.SetDefault("BACKEND", "overpass")
	viper.SetDefault("MAX_SEARCH_RESULTS", 100)
	viper.SetDefault("README_PATH", "README.md")
	viper.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("OVERPASS_TIMEOUT", "60s")
	viper.SetDefault("OVERPASS_RPS", 1)
	viper.SetDefault("CONTACT", "")
	viper.SetDefault("WAREHOUSE_PATH", "places.db")
	viper.SetDefault("KV_PATH", "places_store.db")

	if err := viper.ReadInConfig(); err != nil {
		var typeErr viper.ConfigFileNotFoundError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}

	config := &Config{
		BaseURL:          viper.GetString("BASE_URL"),
		Backend:          viper.GetString("BACKEND"),
		MaxSearchResults: viper.GetInt("MAX_SEARCH_RESULTS"),
		ReadmePath:       viper.GetString("README_PATH"),
		OverpassURL:      viper.GetString("OVERPASS_URL"),
		OverpassTimeout:  viper.GetDuration("OVERPASS_TIMEOUT"),
		OverpassRPS:      viper.GetFloat64("OVERPASS_RPS"),
		Contact:          viper.GetString("CONTACT"),
		WarehousePath:    viper.GetString("WAREHOUSE_PATH"),
		KVPath:           viper.GetString("KV_PATH"),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "overpass", "warehouse", "kv":
	default:
		return fmt.Errorf("unknown BACKEND %q: must be overpass, warehouse or kv", c.Backend)
	}
	if c.MaxSearchResults <= 0 {
		return fmt.Errorf("MAX_SEARCH_RESULTS must be positive, got %d", c.MaxSearchResults)
	}
	return nil
}
