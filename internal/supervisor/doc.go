// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package supervisor runs PlanAdvisor's long-lived services under suture v4.

The tree is small:

	planadvisor (root)
	└── api-layer
	    └── http-server (services.HTTPServerService)

A service that returns an error is restarted with backoff once
FailureThreshold failures accumulate faster than FailureDecay forgives them.
Cancelling the context passed to Serve stops every service, waiting at most
ShutdownTimeout for each.

Supervisor events (start, failure, backoff, timeout) are logged through
sutureslog, using the slog bridge from the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
