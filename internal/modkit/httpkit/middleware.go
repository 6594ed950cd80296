package httpkit

import (
	"net/http"
	"time"

	"ordertrack/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
}

// CommonStack is the middleware every versioned API route passes through
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	stack := middleware.Defaults(o.Timeout)
	stack = append(stack, middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}))
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return stack
}
