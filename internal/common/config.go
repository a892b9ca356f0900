package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr    string `mapstructure:"addr"`
		TempDir string `mapstructure:"temp_dir"`
	} `mapstructure:"server"`

	Report struct {
		DebugJSON string `mapstructure:"debug_json"` // side-channel path, empty disables it
	} `mapstructure:"report"`

	Ingest struct {
		InboxDir string        `mapstructure:"inbox_dir"`
		Debounce time.Duration `mapstructure:"debounce"`
	} `mapstructure:"ingest"`
}

func (c *Config) Validate() error {
	var checks = []struct {
		condition bool
		message   string
	}{
		{c.Server.Addr == "", "server addr is required"},
		{c.Server.TempDir == "", "server temp_dir is required"},
		{c.Ingest.Debounce < 0, "ingest debounce must not be negative"},
	}
	for _, check := range checks {
		if check.condition {
			return errors.New(check.message)
		}
	}
	return nil
}

// LoadConfig reads an optional config.yaml from the working directory on top
// of the defaults. A missing file is fine; a malformed one is not.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.temp_dir", "temp_files")
	viper.SetDefault("report.debug_json", "factures.json")
	viper.SetDefault("ingest.inbox_dir", "")
	viper.SetDefault("ingest.debounce", 500*time.Millisecond)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}
