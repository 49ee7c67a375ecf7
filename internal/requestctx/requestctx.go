package requestctx

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	actorIDKey   ctxKey = "actor_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithActorID records the authenticated employee behind the request,
// used by the audit trail when a service call has no handler context.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

func GetActorID(ctx context.Context) string {
	if value, ok := ctx.Value(actorIDKey).(string); ok {
		return value
	}
	return ""
}
