package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/comanda-backend/internal/orders"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

type stubOrdersService struct {
	created   *orders.OrderDTO
	list      *orders.ListResponse
	updated   *orders.OrderDTO
	analytics *orders.AnalyticsResponse
	err       error

	lastFilters orders.ListFilters
	lastLimit   int
	lastOrderID uuid.UUID
}

func (s *stubOrdersService) Create(context.Context, uuid.UUID, orders.CreateOrderRequest) (*orders.OrderDTO, error) {
	return s.created, s.err
}

func (s *stubOrdersService) List(_ context.Context, _ uuid.UUID, filters orders.ListFilters, limit int) (*orders.ListResponse, error) {
	s.lastFilters = filters
	s.lastLimit = limit
	return s.list, s.err
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, _ uuid.UUID, orderID uuid.UUID, _ orders.UpdateStatusRequest) (*orders.OrderDTO, error) {
	s.lastOrderID = orderID
	return s.updated, s.err
}

func (s *stubOrdersService) Analytics(context.Context, uuid.UUID, orders.AnalyticsFilters) (*orders.AnalyticsResponse, error) {
	return s.analytics, s.err
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestOrdersCreateReturns201(t *testing.T) {
	svc := &stubOrdersService{created: &orders.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusPending}}
	handler := OrdersCreate(svc, nil)

	body := []byte(`{"type":"takeout","items":[{"name":"tacos","quantity":2,"price":"45"}],"subtotal":"90","tax":"14.4","tip":"0","total":"104.4"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/orders", body, uuid.New()))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestOrdersListParsesFilters(t *testing.T) {
	svc := &stubOrdersService{list: &orders.ListResponse{Orders: []orders.OrderDTO{}}}
	handler := OrdersList(svc, nil)

	target := "/api/v1/orders?status=pending&from=2025-03-01&to=2025-03-31&limit=10"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, target, nil, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastLimit != 10 {
		t.Fatalf("expected limit 10 got %d", svc.lastLimit)
	}
	if svc.lastFilters.Status == nil || *svc.lastFilters.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status filter got %+v", svc.lastFilters.Status)
	}
	if svc.lastFilters.From == nil || svc.lastFilters.To == nil {
		t.Fatal("expected date filters set")
	}
	// The upper bound covers the whole requested day.
	if got := svc.lastFilters.To.Day(); got != 1 {
		t.Fatalf("expected to bound rolled into April, got day %d", got)
	}
}

func TestOrdersListRejectsUnknownStatus(t *testing.T) {
	handler := OrdersList(&stubOrdersService{}, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders?status=vanished", nil, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersUpdateStatusParsesPath(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{updated: &orders.OrderDTO{ID: orderID, Status: enums.OrderStatusConfirmed}}
	handler := OrdersUpdateStatus(svc, nil)

	req := authedRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status", []byte(`{"status":"confirmed"}`), uuid.New())
	req = withRouteParam(req, "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastOrderID != orderID {
		t.Fatalf("expected order id %s got %s", orderID, svc.lastOrderID)
	}
}

func TestOrdersUpdateStatusBadPathParam(t *testing.T) {
	handler := OrdersUpdateStatus(&stubOrdersService{}, nil)
	req := authedRequest(http.MethodPatch, "/api/v1/orders/not-a-uuid/status", []byte(`{"status":"confirmed"}`), uuid.New())
	req = withRouteParam(req, "orderId", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersUpdateStatusStateConflict(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot transition order from completed to pending")}
	handler := OrdersUpdateStatus(svc, nil)

	orderID := uuid.New()
	req := authedRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status", []byte(`{"status":"pending"}`), uuid.New())
	req = withRouteParam(req, "orderId", orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestOrdersAnalyticsSuccess(t *testing.T) {
	svc := &stubOrdersService{analytics: &orders.AnalyticsResponse{
		TotalOrders:       3,
		TotalRevenue:      decimal.NewFromInt(360),
		AverageOrderValue: decimal.NewFromInt(120),
		StatusCounts:      map[string]int64{"completed": 3},
	}}
	handler := OrdersAnalytics(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders/analytics", nil, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data orders.AnalyticsResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalOrders != 3 {
		t.Fatalf("expected 3 orders got %d", envelope.Data.TotalOrders)
	}
}
