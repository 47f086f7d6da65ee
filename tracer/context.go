package tracer

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying t, for handing a request's Tracer down
// the call chain.
func NewContext(ctx context.Context, t *Tracer) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext returns the Tracer stored in ctx by NewContext.
func FromContext(ctx context.Context) (*Tracer, bool) {
	if ctx == nil {
		return nil, false
	}
	t, ok := ctx.Value(contextKey{}).(*Tracer)
	return t, ok && t != nil
}
