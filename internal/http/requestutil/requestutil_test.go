package requestutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/blaseball-reference/internal/pages"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected generated request id")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestPageQuery(t *testing.T) {
	tests := []struct {
		raw  string
		want pages.Query
	}{
		{raw: "", want: pages.Query{}},
		{raw: "season=3", want: pages.Query{Season: "3"}},
		{raw: "sort=hits&dir=desc", want: pages.Query{Sort: "hits", Descending: true}},
		{raw: "sort=hits&dir=DESC", want: pages.Query{Sort: "hits", Descending: true}},
		{raw: "sort=hits&dir=sideways", want: pages.Query{Sort: "hits"}},
		{raw: "dir=desc", want: pages.Query{}},
		{raw: "season=+2+&sort=era", want: pages.Query{Season: "2", Sort: "era"}},
		{raw: "season=" + strings.Repeat("9", maxQueryValue+1), want: pages.Query{}},
	}

	for _, tt := range tests {
		values, err := url.ParseQuery(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if diff := cmp.Diff(tt.want, PageQuery(values)); diff != "" {
			t.Fatalf("PageQuery(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestSlug(t *testing.T) {
	if got, ok := Slug("york-silk"); !ok || got != "york-silk" {
		t.Fatalf("expected york-silk, got %q %v", got, ok)
	}
	if got, ok := Slug("jessica%27s"); !ok || got != "jessica's" {
		t.Fatalf("expected decoded slug, got %q %v", got, ok)
	}
	for _, raw := range []string{"", "%zz", "a%2Fb", "a%20b"} {
		if _, ok := Slug(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
