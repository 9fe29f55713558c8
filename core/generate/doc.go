// Package generate is the quiz-generation use case: it validates a request,
// renders the generator prompt, runs the upstream workflow through a
// middleware chain and parses the raw payload into questions.
//
// The upstream call happens exactly once per request. Timeouts and logging
// are added as [Middleware] (see the middleware sub-package); the chain is
// applied outermost-first, as in:
//
//	svc := generate.New(difyProvider, quiz.New(),
//	    generate.WithMiddleware(
//	        middleware.NewLoggingMiddleware(logger),
//	        middleware.NewTimeoutMiddleware(60*time.Second),
//	    ),
//	)
package generate
