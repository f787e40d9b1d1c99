package security

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the client IP from the request, honouring the headers
// set by reverse proxies.
func ClientIP(r *http.Request) string {
	// X-Forwarded-For may carry a chain; the first entry is the client.
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
