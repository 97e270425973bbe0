package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration
type Config struct {
	// Node configuration
	HTTPAddr string
	DataDir  string
	Seed     bool

	// Remote sync configuration, from FILATRACK_* environment variables
	Remote RemoteConfig
}

// RemoteConfig holds the remote document store settings. An empty URL means
// remote sync is not configured and the app runs local-only.
type RemoteConfig struct {
	URL          string        `envconfig:"REMOTE_URL"`
	Token        string        `envconfig:"REMOTE_TOKEN"`
	PollInterval time.Duration `envconfig:"REMOTE_POLL_INTERVAL" default:"5s"`
}

// Load parses command line flags and the environment and returns a Config
func Load() (*Config, error) {
	config := &Config{}

	// Define flags
	flag.StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP API address")
	flag.StringVar(&config.DataDir, "data-dir", defaultDataDir(), "Directory for the local data file")
	flag.BoolVar(&config.Seed, "seed", true, "Start with example data when the local store is empty")

	// Parse flags
	flag.Parse()

	if config.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	// Parse remote sync settings
	if err := envconfig.Process("filatrack", &config.Remote); err != nil {
		return nil, fmt.Errorf("parse remote sync config: %w", err)
	}

	return config, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".filatrack")
}
