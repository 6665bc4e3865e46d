package httpclient

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogRequests returns a middleware that logs every outgoing request with its
// method, URL, status, and duration. The logger is taken from the request
// context via zctx.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			lg := zctx.From(req.Context())

			resp, err := next.RoundTrip(req)
			if err != nil {
				lg.Warn("Request failed",
					zap.String("method", req.Method),
					zap.String("url", req.URL.String()),
					zap.Duration("duration", time.Since(start)),
					zap.Error(err),
				)
				return nil, err
			}

			lg.Debug("Request completed",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", time.Since(start)),
			)
			return resp, nil
		})
	}
}
