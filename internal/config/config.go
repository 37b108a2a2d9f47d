package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "http://localhost:8080/api/questions"
	DefaultPort     = "8080"
)

type Config struct {
	Client struct {
		Endpoint string `yaml:"endpoint"`
		UI       string `yaml:"ui"`
	} `yaml:"client"`
	Scores struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
	} `yaml:"scores"`
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		File string `yaml:"file"`
		TTL  string `yaml:"ttl"`
	} `yaml:"questions"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	cfg := Config{}
	cfg.Client.Endpoint = DefaultEndpoint
	cfg.Client.UI = "auto"
	cfg.Scores.Driver = "sqlite"
	cfg.Server.Port = DefaultPort
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
