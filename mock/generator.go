package mock

import (
	"context"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.Generator = (*Generator)(nil)

// Generator is a mock implementation of linkctx.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req *linkctx.GenerateRequest) (*linkctx.Generation, error)
}

func (g *Generator) Generate(ctx context.Context, req *linkctx.GenerateRequest) (*linkctx.Generation, error) {
	return g.GenerateFn(ctx, req)
}
