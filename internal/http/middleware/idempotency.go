// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for template creation. The
// validator checks the header, stashes the key for handlers
// (GetIdempotencyKey), and asks an optional lookup whether the key already
// produced a template. A known key marks the request as a replay (IsReplay)
// and lets it skip rate limiting; serving the stored result is up to the
// handler.
package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := asString(c.Value(ctxKeyIdemKey))
	return s, s != ""
}

// IsReplay reports whether the key of this request already produced a result.
func IsReplay(c *gin.Context) bool {
	b, _ := c.Value(ctxKeyIdemReplay).(bool)
	return b
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
	// ReplayRoutes limits the lookup to these "METHOD /full/path" routes,
	// matched against the gin route pattern. Empty means every unsafe route.
	// Other routes still get the key validated but are never marked as a
	// replay, so a known key cannot exempt them from rate limiting.
	ReplayRoutes []string
}

// IdempotencyLookup reports whether key already produced a still-valid
// result. Errors are treated as a miss.
type IdempotencyLookup func(ctx context.Context, key string) (bool, error)

// IdempotencyValidator validates the Idempotency-Key header on unsafe
// methods (POST, PUT, PATCH, DELETE); safe methods pass through untouched.
//
//   - no header: no-op
//   - malformed header: 400 bad_idempotency_key
//   - lookup hit on a replay route: request marked as replay and exempt
//     from rate limiting
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}
	var replayRoutes map[string]bool
	if len(opts.ReplayRoutes) > 0 {
		replayRoutes = make(map[string]bool, len(opts.ReplayRoutes))
		for _, r := range opts.ReplayRoutes {
			replayRoutes[r] = true
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && (replayRoutes == nil || replayRoutes[c.Request.Method+" "+c.FullPath()]) {
			if hit, err := lookup(c.Request.Context(), key); err == nil && hit {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
				idemReplays.Inc()
			}
		}
		c.Next()
	}
}
