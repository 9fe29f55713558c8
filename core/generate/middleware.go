package generate

import (
	"context"

	"github.com/leofalp/quizforge/providers/workflow"
)

// RunFunc runs one workflow request. It is the unit threaded through the
// middleware chain.
type RunFunc func(ctx context.Context, request workflow.RunRequest) (*workflow.RunResponse, error)

// Middleware wraps the next RunFunc in the chain. The first middleware given
// to [WithMiddleware] is the outermost wrapper.
type Middleware func(next RunFunc) RunFunc

// buildChain wraps the provider call with middlewares, applied in reverse so
// that middlewares[0] executes first.
func buildChain(provider workflow.Provider, middlewares []Middleware) RunFunc {
	var chain RunFunc = func(ctx context.Context, request workflow.RunRequest) (*workflow.RunResponse, error) {
		return provider.Run(ctx, request)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}
