// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package logging is the zerolog logging layer shared by every Paperwise
// component.
//
// A process-wide logger is configured once from main with Init and read
// through the package-level helpers. JSON output is the default; console
// output is meant for local development.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Int("rows", n).Msg("Feature store loaded")
//
// Components that live for the whole process take a logger derived with
// WithComponent so their lines can be filtered:
//
//	log := logging.WithComponent("recommend")
//
// # Request Context
//
// The API middleware stores a request id (and an optional short correlation
// id) on the request context. Ctx returns a logger carrying those fields, and
// the recommendation engine copies the request id into its response metadata.
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Cluster sweep timed out")
//
// # Supervisor Integration
//
// suture reports service events through log/slog. NewSlogLogger adapts the
// global zerolog logger to a *slog.Logger for sutureslog.
package logging
