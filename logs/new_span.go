package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan derives a span from the one carried by ctx, if any.
// what names the unit of work and is logged with the span record.
type NewSpan func(ctx context.Context, what string, args ...any) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, what string, args ...any) (context.Context, Span) {

		var parent Span
		if v := ctx.Value(SpanKey); v != nil {
			parent = v.(Span)
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.InfoContext(ctx, "new span: "+what, args...)

		return ctx, span
	}
}
