// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package supervisor runs Paperwise's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("paperwise")
	├── DataSupervisor ("data-layer")
	│   ├── FeatureRefreshService (if features.refresh_interval > 0)
	│   └── CheckpointService (if database.checkpoint_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff. A failing data-layer service
does not stop the API from serving the last loaded feature matrix.

Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger.

Service wrappers live in the services subpackage.
*/
package supervisor
