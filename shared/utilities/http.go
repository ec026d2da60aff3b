package utilities

import (
	"net"
	"net/http"
	"strings"
)

// Headers consulted, in order, when resolving the address of the client
// behind a reverse proxy.
var clientIPHeaders = []string{
	"X-Real-IP",
	"X-Forwarded-For",
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return value reports whether a well-formed header was
// present.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return parts[1], true
}

// ClientIP resolves the originating client address of a request, preferring
// proxy-set headers over the socket peer address.
func ClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may carry a chain; the first hop is the client.
		if idx := strings.Index(value, ","); idx >= 0 {
			value = value[:idx]
		}

		if ip := strings.TrimSpace(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
