package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID returns a middleware that sets a UUID v4 X-Request-ID header on
// every outgoing request that does not already carry one. The request is
// cloned before mutation, as required by the RoundTripper contract.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") != "" {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.Header.Set("X-Request-ID", uuid.New().String())
			return next.RoundTrip(req)
		})
	}
}
