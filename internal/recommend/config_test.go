// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Limits.DefaultK != 5 {
		t.Errorf("DefaultK = %d, want 5", cfg.Limits.DefaultK)
	}
	if cfg.Limits.MaxK != 50 {
		t.Errorf("MaxK = %d, want 50", cfg.Limits.MaxK)
	}
	if cfg.Catalog.SnapshotTTL != time.Minute {
		t.Errorf("SnapshotTTL = %v, want 1m", cfg.Catalog.SnapshotTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{
			name:    "zero default k",
			modify:  func(c *Config) { c.Limits.DefaultK = 0 },
			wantErr: "limits.default_k",
		},
		{
			name:    "max below default",
			modify:  func(c *Config) { c.Limits.MaxK = 2 },
			wantErr: "limits.max_k",
		},
		{
			name:   "max equals default",
			modify: func(c *Config) { c.Limits.MaxK = c.Limits.DefaultK },
		},
		{
			name:    "negative ttl",
			modify:  func(c *Config) { c.Catalog.SnapshotTTL = -time.Second },
			wantErr: "catalog.snapshot_ttl",
		},
		{
			name:   "zero ttl disables snapshots",
			modify: func(c *Config) { c.Catalog.SnapshotTTL = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	clone := orig.Clone()
	clone.Limits.MaxK = 7
	clone.Catalog.SnapshotTTL = time.Hour

	if orig.Limits.MaxK != 50 || orig.Catalog.SnapshotTTL != time.Minute {
		t.Error("Clone shares state with the original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string]map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := out["catalog"]["snapshot_ttl"]; got != "1m0s" {
		t.Errorf("snapshot_ttl = %v, want 1m0s", got)
	}
	if got := out["limits"]["default_k"]; got != float64(5) {
		t.Errorf("default_k = %v, want 5", got)
	}
}
