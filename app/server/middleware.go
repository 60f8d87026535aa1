package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
)

type ctxKey string

const (
	hashedIPKey ctxKey = "hashedIP"
	ownerKey    ctxKey = "owner"
)

// HashedIP middleware adds anonymized IP to request context for audit logging.
// Must run after rest.RealIP middleware which sets r.RemoteAddr to the client IP.
func HashedIP(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := "-"
			if r.RemoteAddr != "" {
				ip = hashIP(stripPort(r.RemoteAddr), secret)
			}
			ctx := context.WithValue(r.Context(), hashedIPKey, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetHashedIP retrieves hashed IP from context
func GetHashedIP(r *http.Request) string {
	if ip, ok := r.Context().Value(hashedIPKey).(string); ok {
		return ip
	}
	return "-"
}

// Owner middleware puts owner identity from the given header into request context.
// Requests without the header stay anonymous.
func Owner(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := strings.TrimSpace(r.Header.Get(header))
			if owner == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey, owner)))
		})
	}
}

// GetOwner returns owner identity from context, empty for anonymous requests
func GetOwner(r *http.Request) string {
	if owner, ok := r.Context().Value(ownerKey).(string); ok {
		return owner
	}
	return ""
}

// RequireOwner rejects anonymous requests with 401
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetOwner(r) == "" {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusUnauthorized, errNoOwnerHeader, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logger middleware with masking of message tokens and IP anonymization.
// Uses hashed IP from context if HashedIP middleware ran before, hashes RemoteAddr otherwise.
func Logger(l log.L, secret string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			h.ServeHTTP(ww, r)

			q := r.URL.String()
			if qun, err := url.QueryUnescape(q); err == nil {
				q = qun
			}

			remoteIP := GetHashedIP(r)
			if remoteIP == "-" && r.RemoteAddr != "" {
				remoteIP = hashIP(stripPort(r.RemoteAddr), secret)
			}

			l.Logf("[DEBUG] %s - %s - %s - %d - %v", r.Method, maskTokens(q), remoteIP, ww.status, time.Since(start))
		}
		return http.HandlerFunc(fn)
	}
}

// maskTokens hides all but the first 8 characters of message tokens in /secrets/ and /view/ paths
func maskTokens(q string) string {
	elems := strings.Split(q, "/")
	for i := 0; i < len(elems)-1; i++ {
		if elems[i] != "secrets" && elems[i] != "view" {
			continue
		}
		tok := elems[i+1]
		if len(tok) > 8 {
			elems[i+1] = tok[:8] + "*****"
		}
	}
	return strings.Join(elems, "/")
}

// hashIP returns first 12 chars of HMAC-SHA256 hash for IP anonymization
func hashIP(ip, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))[:12]
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// statusWriter wraps http.ResponseWriter to capture status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// StripSlashes removes trailing slashes from URLs
func StripSlashes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
		}
		next.ServeHTTP(w, r)
	})
}

// Timeout creates a timeout middleware
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}

// RateLimit limits requests per second from a single client IP.
// Must run after rest.RealIP middleware, the limiter keys on RemoteAddr.
func RateLimit(perSecond float64) func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(perSecond, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessageContentType("application/json; charset=utf-8")
	lmt.SetMessage(`{"error":"too many requests"}`)
	return func(next http.Handler) http.Handler {
		return tollbooth.HTTPMiddleware(lmt)(next)
	}
}

// SecurityHeaders adds security headers to all responses
func SecurityHeaders(https bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "no-referrer")
			if https {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			w.Header().Set("Content-Security-Policy",
				"default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; "+
					"img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'")
			next.ServeHTTP(w, r)
		})
	}
}
