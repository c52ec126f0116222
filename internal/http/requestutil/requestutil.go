package requestutil

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/pages"
)

const maxQueryValue = 64

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
var useFallback atomic.Bool

// SanitizeRequestID validates the incoming request ID header and generates a new one when invalid.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID generates a random request ID with a time-based fallback.
func NewRequestID() string {
	var b [8]byte
	if !useFallback.Load() {
		if _, err := rand.Read(b[:]); err == nil {
			return hex.EncodeToString(b[:])
		}
	}
	return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000000000")))
}

// ClientIP extracts the client IP from X-Forwarded-For or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
		return forwarded
	}
	return r.RemoteAddr
}

// PageQuery reads the season, sort and dir parameters. Overlong values are ignored; dir is
// descending only when it says so.
func PageQuery(values url.Values) pages.Query {
	q := pages.Query{
		Season: queryValue(values, "season"),
		Sort:   queryValue(values, "sort"),
	}
	if q.Sort != "" {
		q.Descending = strings.EqualFold(queryValue(values, "dir"), "desc")
	}
	return q
}

// Slug decodes a path segment into an entity slug. Empty or undecodable segments and segments
// containing separators or whitespace are rejected.
func Slug(raw string) (string, bool) {
	slug, err := url.PathUnescape(raw)
	if err != nil || slug == "" || strings.ContainsAny(slug, " \t/") {
		return "", false
	}
	return slug, true
}

func queryValue(values url.Values, key string) string {
	v := strings.TrimSpace(values.Get(key))
	if len(v) > maxQueryValue {
		return ""
	}
	return v
}
