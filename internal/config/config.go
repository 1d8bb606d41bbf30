package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/rkeulen/autokosten/internal/models"
)

// RegistryConfig points at the two open-data datasets of the national
// vehicle registry: base attributes and fuel type.
type RegistryConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	FuelURL string        `yaml:"fuelUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// RoadTaxConfig points at the form-based road-tax lookup site and names
// the jurisdiction whose row is extracted from the result table.
type RoadTaxConfig struct {
	URL          string        `yaml:"url"`
	Jurisdiction string        `yaml:"jurisdiction"`
	Timeout      time.Duration `yaml:"timeout"`
}

// StoreConfig selects where session snapshots are persisted.
type StoreConfig struct {
	// Backend is "file" or "mongo".
	Backend string `yaml:"backend"`
	// Dir holds one JSON document per session owner when Backend is "file".
	Dir string `yaml:"dir"`
}

// MQTTConfig enables publishing computed breakdowns. An empty broker
// disables publishing.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"clientId"`
}

type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	RoadTax  RoadTaxConfig  `yaml:"roadTax"`
	Store    StoreConfig    `yaml:"store"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	// CacheTTL makes cached registry and tax entries refetch once stale.
	// Zero keeps the cache-forever behavior.
	CacheTTL time.Duration `yaml:"cacheTtl"`
	Defaults models.Params `yaml:"defaults"`
	Port     string        `yaml:"port"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			BaseURL: "https://opendata.rdw.nl/resource/m9d7-ebf2.json",
			FuelURL: "https://opendata.rdw.nl/resource/8ys7-d773.json",
			Timeout: 10 * time.Second,
		},
		RoadTax: RoadTaxConfig{
			Jurisdiction: "Noord-Holland",
			Timeout:      10 * time.Second,
		},
		Store: StoreConfig{
			Backend: "file",
			Dir:     "data",
		},
		Defaults: models.DefaultParams(),
		Port:     "8080",
	}
}

// Load reads a YAML config file over the defaults; keys the file leaves
// out keep their default value. Environment variables win last.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		buf, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over the file values, matching
// how the rest of the deployment is configured.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("ROADTAX_URL"); v != "" {
		c.RoadTax.URL = v
	}
	if v := os.Getenv("ROADTAX_JURISDICTION"); v != "" {
		c.RoadTax.Jurisdiction = v
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		c.MQTT.Broker = v
	}
	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		c.Store.Dir = v
	}
	if v := os.Getenv("SNAPSHOT_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes >= 0 {
			c.CacheTTL = time.Duration(minutes) * time.Minute
		}
	}
}
