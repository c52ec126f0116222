package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	cases := []struct {
		val  string
		want Duration
	}{
		{"", time.Minute},
		{"90s", 90 * time.Second},
		{"-5s", time.Minute},
		{"soon", time.Minute},
	}
	for _, tc := range cases {
		t.Setenv("DURATION_TEST", tc.val)
		if got := durationEnvOrDefault("DURATION_TEST", time.Minute); got != tc.want {
			t.Fatalf("expected %v for %q, got %v", tc.want, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "25")
	if got := intEnvOrDefault("INT_TEST", 10); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	for _, raw := range []string{"0", "-3", "ten"} {
		t.Setenv("INT_TEST", raw)
		if got := intEnvOrDefault("INT_TEST", 10); got != 10 {
			t.Fatalf("expected default for %q, got %d", raw, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", " https://a.example , ,https://b.example")
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, listEnvOrDefault("LIST_TEST", "*")); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	t.Setenv("LIST_TEST", " , ")
	if diff := cmp.Diff([]string{"*"}, listEnvOrDefault("LIST_TEST", "*")); diff != "" {
		t.Fatalf("expected default list (-want +got):\n%s", diff)
	}
}
