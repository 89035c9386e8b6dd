package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jcastillo-dev/comanda-backend/api/middleware"
	"github.com/jcastillo-dev/comanda-backend/internal/subscriptions"
	"github.com/jcastillo-dev/comanda-backend/pkg/config"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

type stubSubscriptionsService struct {
	dto *subscriptions.SubscriptionDTO
	err error
}

func (s stubSubscriptionsService) ChangePlan(context.Context, uuid.UUID, subscriptions.ChangePlanRequest) (*subscriptions.SubscriptionDTO, error) {
	return s.dto, s.err
}

func (s stubSubscriptionsService) Current(context.Context, uuid.UUID) (*subscriptions.SubscriptionDTO, error) {
	return s.dto, s.err
}

func (s stubSubscriptionsService) SubscriptionState(context.Context, uuid.UUID) (middleware.SubscriptionState, error) {
	return middleware.SubscriptionState{}, s.err
}

func TestSubscriptionsChangePlanSuccess(t *testing.T) {
	svc := stubSubscriptionsService{dto: &subscriptions.SubscriptionDTO{Plan: "pro", Status: "active"}}
	handler := SubscriptionsChangePlan(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPut, "/api/v1/subscriptions/plan", []byte(`{"plan":"pro"}`), uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data subscriptions.SubscriptionDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Plan != "pro" {
		t.Fatalf("expected pro plan got %s", envelope.Data.Plan)
	}
}

func TestSubscriptionsChangePlanUnknownPlan(t *testing.T) {
	svc := stubSubscriptionsService{err: pkgerrors.New(pkgerrors.CodeValidation, "unknown subscription plan")}
	handler := SubscriptionsChangePlan(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPut, "/api/v1/subscriptions/plan", []byte(`{"plan":"platinum"}`), uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestHealthLiveSetsEnvHeader(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "0"}}
	handler := HealthLive(cfg)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Comanda-Env"); got != "dev" {
		t.Fatalf("expected env header dev got %s", got)
	}
}
