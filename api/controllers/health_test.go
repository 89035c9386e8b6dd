package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcastillo-dev/comanda-backend/pkg/config"
)

type stubPinger struct {
	err    error
	pinged bool
}

func (s *stubPinger) Ping(context.Context) error {
	s.pinged = true
	return s.err
}

func TestHealthReadyAllDepsUp(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthReady(cfg, nil, &stubPinger{}, &stubPinger{})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthReady(cfg, nil, &stubPinger{err: errors.New("refused")}, &stubPinger{})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthReadyProbesEveryStore(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	dbPing := &stubPinger{err: errors.New("refused")}
	redisPing := &stubPinger{err: errors.New("timeout")}
	handler := HealthReady(cfg, nil, dbPing, redisPing)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if !dbPing.pinged || !redisPing.pinged {
		t.Fatalf("expected both stores probed, db=%v redis=%v", dbPing.pinged, redisPing.pinged)
	}
}
