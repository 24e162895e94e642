// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package services adapts Paperwise components to suture.Service.
//
// Each wrapper's Serve blocks until its context is canceled and returns
// ctx.Err() on a clean stop, so suture does not restart it. Periodic jobs log
// their failures and keep running; only the HTTP server returns an error for
// suture to restart.
package services
