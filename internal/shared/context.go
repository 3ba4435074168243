package shared

import "context"

type contextKey string

const clientIPKey contextKey = "client_ip"

// WithClientIP stores the resolved client IP on the request context so
// services can attach it to audit entries without depending on gin.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFromContext returns the stored client IP, or "" when the
// request never went through the client IP middleware.
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}
