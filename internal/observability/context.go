package observability

import "context"

// Context key type to avoid collisions
type contextKey string

// requestIDKey is the context key for the request correlation ID
const requestIDKey contextKey = "request_id"

// WithRequestID adds a request correlation ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext retrieves the request correlation ID from context,
// or "" when the request was not correlated.
func RequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(requestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return ""
}
