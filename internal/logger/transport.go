package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// RequestIDTransport stamps every outgoing request with X-Request-ID, reusing
// the id carried by the request context when there is one.
func RequestIDTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(req)
		}

		ctx, reqID := EnsureRequestID(req.Context())
		req = req.Clone(ctx)
		req.Header.Set(RequestIDHeader, reqID)

		return next.RoundTrip(req)
	})
}

// LoggingTransport logs every outgoing request once the response (or error)
// is known.
func LoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		log := FromCtx(req.Context())

		resp, err := next.RoundTrip(req)
		if err != nil {
			log.Warn("outgoing request failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Duration("duration_ms", time.Since(start)),
				zap.Error(err),
			)
			return nil, err
		}

		log.Debug("outgoing request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return resp, nil
	})
}
