// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package supervisor runs the long-lived parts of the service under a suture
supervisor tree.

The tree has two layers:

	unifinder (root)
	├── catalog-layer   catalog file watcher and importer
	└── api-layer       HTTP server

A failing layer is restarted with backoff without touching its sibling, so a
broken catalog file never takes the HTTP API down. Supervisor events are logged
through sutureslog using the slog bridge from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddCatalogService(services.NewCatalogImportService(importer, cfg.Catalog))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
