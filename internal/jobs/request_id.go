package jobs

import "context"

type requestIDKey struct{}

// WithRequestID tags ctx with the submitting request's id so every log line a
// job emits can be traced back to the HTTP request that started it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// backgroundWithRequestID gives a job a context independent of the request's
// lifetime. Only the request id crosses over; a job must outlive the request
// that submitted it, so cancellation and deadlines do not.
func backgroundWithRequestID(ctx context.Context) context.Context {
	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		return context.Background()
	}
	return WithRequestID(context.Background(), requestID)
}
