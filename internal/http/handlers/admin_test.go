package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/testutil"
)

type stubIndex struct {
	err   error
	loads int
}

func (s *stubIndex) LoadIndex(ctx context.Context) error {
	s.loads++
	return s.err
}

func (s *stubIndex) Players() []players.Player {
	return []players.Player{testutil.SamplePlayer("york-silk", players.PositionLineup)}
}

func (s *stubIndex) Teams() []teams.Team { return nil }

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/index/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	index := &stubIndex{}
	h := NewAdminHandler(index, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshIndex), adminRequest(token))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
	if index.loads != 0 {
		t.Fatalf("expected no loads, got %d", index.loads)
	}
}

func TestAdminRefreshDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubIndex{}, "", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshIndex), adminRequest(""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshReloadsIndex(t *testing.T) {
	index := &stubIndex{}
	h := NewAdminHandler(index, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshIndex), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if resp["players"] != float64(1) || resp["teams"] != float64(0) {
		t.Fatalf("unexpected counts %+v", resp)
	}
	if index.loads != 1 {
		t.Fatalf("expected one load, got %d", index.loads)
	}
}

func TestAdminRefreshReportsLoadFailure(t *testing.T) {
	h := NewAdminHandler(&stubIndex{err: errors.New("upstream down")}, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshIndex), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestAdminRefreshWithoutIndex(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshIndex), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
