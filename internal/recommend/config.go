// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"encoding/json"
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Catalog controls how the engine reads the catalog.
	Catalog CatalogConfig `json:"catalog"`
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultK is used when a request does not specify K.
	// The questionnaire shows five results.
	DefaultK int `json:"default_k"`

	// MaxK caps K.
	MaxK int `json:"max_k"`
}

// CatalogConfig controls catalog snapshots.
type CatalogConfig struct {
	// SnapshotTTL is how long a catalog snapshot is reused across requests.
	// Zero disables snapshot reuse and reads the provider on every request.
	SnapshotTTL time.Duration `json:"snapshot_ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Catalog: CatalogConfig{
			SnapshotTTL: time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Catalog.SnapshotTTL < 0 {
		return fmt.Errorf("catalog.snapshot_ttl must be non-negative, got %v", c.Catalog.SnapshotTTL)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	return &Config{
		Limits:  c.Limits,
		Catalog: c.Catalog,
	}
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Limits  LimitsConfig `json:"limits"`
		Catalog struct {
			SnapshotTTL string `json:"snapshot_ttl"`
		} `json:"catalog"`
	}{
		Limits: c.Limits,
		Catalog: struct {
			SnapshotTTL string `json:"snapshot_ttl"`
		}{SnapshotTTL: c.Catalog.SnapshotTTL.String()},
	})
}
