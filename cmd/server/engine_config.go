// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package main

import (
	"github.com/tomtom215/unifinder/internal/config"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// buildEngineConfig maps application settings onto the engine defaults.
// Zero values keep the engine's own default.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	if cfg.Recommend.DefaultK > 0 {
		ec.Limits.DefaultK = cfg.Recommend.DefaultK
	}
	if cfg.Recommend.MaxK > 0 {
		ec.Limits.MaxK = cfg.Recommend.MaxK
	}
	if cfg.Recommend.SnapshotTTL > 0 {
		ec.Catalog.SnapshotTTL = cfg.Recommend.SnapshotTTL
	}
	return ec
}
