// Package httpclient provides composable http.RoundTripper middleware for
// outgoing requests: request IDs, structured logging, and OpenTelemetry
// instrumentation.
package httpclient

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Middleware decorates an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// roundTripperFunc adapts a function to the http.RoundTripper interface.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Wrap applies middlewares to rt so that the first listed middleware is the
// outermost on the request path.
func Wrap(rt http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// Instrument wraps the transport with otelhttp client instrumentation, so
// every outgoing request produces a client span.
func Instrument() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return otelhttp.NewTransport(next)
	}
}
