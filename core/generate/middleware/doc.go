// Package middleware provides ready-made [generate.Middleware] values for the
// upstream workflow call: a per-run deadline and structured slog logging.
//
//	svc := generate.New(provider, parser,
//	    generate.WithMiddleware(
//	        middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard),
//	        middleware.NewTimeoutMiddleware(60*time.Second),
//	    ),
//	)
package middleware
