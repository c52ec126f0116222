package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/config"
	"github.com/preston-bernstein/blaseball-reference/internal/testutil"
)

type stubListener struct {
	addr net.Addr
}

func (s *stubListener) Accept() (net.Conn, error) { return nil, errors.New("accept failure") }
func (s *stubListener) Close() error              { return nil }
func (s *stubListener) Addr() net.Addr            { return s.addr }

func TestNetHTTPServerServesCustomListener(t *testing.T) {
	l := &stubListener{addr: &net.TCPAddr{IP: net.IPv4zero, Port: 0}}
	s := netHTTPServer{srv: &http.Server{Handler: http.NewServeMux()}, listener: l}

	if err := s.ListenAndServe(); err == nil {
		t.Fatalf("expected serve error from stub listener")
	}
}

func TestNetHTTPServerServesRealListener(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback listener unavailable: %v", err)
	}
	cfg := config.Config{Provider: config.ProviderFixture}
	built := buildHTTPServer(cfg, &stubRegistry{}, nil, nil).(netHTTPServer)
	s := netHTTPServer{srv: built.srv, listener: l}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", resp.StatusCode)
	}

	_ = s.Shutdown(context.Background())
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("serve did not return after shutdown")
	}
}

func TestBuildHTTPServerAppliesTimeouts(t *testing.T) {
	built := buildHTTPServer(config.Config{Port: "8081"}, &stubRegistry{}, nil, nil).(netHTTPServer)

	if built.Addr() != ":8081" {
		t.Fatalf("expected addr :8081, got %q", built.Addr())
	}
	if built.srv.ReadTimeout != readTimeout || built.srv.WriteTimeout != writeTimeout || built.srv.IdleTimeout != idleTimeout {
		t.Fatalf("unexpected timeouts %+v", built.srv)
	}
	rr := testutil.Serve(built.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}
