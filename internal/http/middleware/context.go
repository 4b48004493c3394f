package middlewarex

import "context"

type ctxKey string

const (
	ctxHypermedia ctxKey = "hypermedia"
)

// WithHypermedia marks the request as asking for hypermedia responses.
func WithHypermedia(ctx context.Context, on bool) context.Context {
	return context.WithValue(ctx, ctxHypermedia, on)
}

func Hypermedia(ctx context.Context) bool {
	v, _ := ctx.Value(ctxHypermedia).(bool)
	return v
}
