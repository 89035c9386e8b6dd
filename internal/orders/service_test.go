package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
	"github.com/jcastillo-dev/comanda-backend/pkg/types"
)

type stubOrdersRepo struct {
	orders     map[uuid.UUID]*models.Order
	statusSets []enums.OrderStatus

	countOrders  int64
	sumRevenue   decimal.Decimal
	avgValue     decimal.Decimal
	statusCounts map[string]int64
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrdersRepo) List(ctx context.Context, userID uuid.UUID, filters ListFilters, limit int) ([]OrderDTO, error) {
	var out []OrderDTO
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, fromModel(order, nil))
		}
	}
	return out, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) error {
	s.statusSets = append(s.statusSets, status)
	if order, ok := s.orders[orderID]; ok && order.UserID == userID {
		order.Status = status
	}
	return nil
}

func (s *stubOrdersRepo) CountOrders(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (int64, error) {
	return s.countOrders, nil
}

func (s *stubOrdersRepo) SumRevenue(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (decimal.Decimal, error) {
	return s.sumRevenue, nil
}

func (s *stubOrdersRepo) AverageOrderValue(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (decimal.Decimal, error) {
	return s.avgValue, nil
}

func (s *stubOrdersRepo) CountByStatus(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (map[string]int64, error) {
	return s.statusCounts, nil
}

func (s *stubOrdersRepo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Order, error) {
	return nil, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	events []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubAllocator struct {
	occupied []uuid.UUID
	released []uuid.UUID
}

func (s *stubAllocator) Occupy(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID) error {
	s.occupied = append(s.occupied, tableID)
	return nil
}

func (s *stubAllocator) Release(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID) error {
	s.released = append(s.released, tableID)
	return nil
}

func buildOrderService(t *testing.T) (Service, *stubOrdersRepo, *stubOutbox, *stubAllocator) {
	t.Helper()
	repo := newStubOrdersRepo()
	ob := &stubOutbox{}
	alloc := &stubAllocator{}
	svc, err := NewService(repo, stubTxRunner{}, ob, alloc)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, ob, alloc
}

func validCreateRequest(tableID *uuid.UUID) CreateOrderRequest {
	return CreateOrderRequest{
		TableID: tableID,
		Type:    string(enums.OrderTypeDineIn),
		Items: types.LineItems{
			{Name: "Tacos al pastor", Quantity: 3, Price: decimal.NewFromFloat(45)},
			{Name: "Agua de horchata", Quantity: 1, Price: decimal.NewFromFloat(25)},
		},
		Subtotal: decimal.NewFromFloat(160),
		Tax:      decimal.NewFromFloat(25.6),
		Tip:      decimal.NewFromFloat(16),
		Total:    decimal.NewFromFloat(201.6),
	}
}

func TestCreateOrderOccupiesTableAndEmitsEvent(t *testing.T) {
	svc, _, ob, alloc := buildOrderService(t)
	userID := uuid.New()
	tableID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, validCreateRequest(&tableID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", dto.Status)
	}
	if len(alloc.occupied) != 1 || alloc.occupied[0] != tableID {
		t.Fatalf("expected table %s to be occupied", tableID)
	}
	if len(ob.events) != 1 || ob.events[0].EventType != enums.OutboxEventOrderCreated {
		t.Fatalf("expected one order.created event, got %v", ob.events)
	}
	if ob.events[0].TenantID != userID {
		t.Fatalf("expected tenant id on event")
	}
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	svc, _, ob, _ := buildOrderService(t)
	tableID := uuid.New()

	req := validCreateRequest(&tableID)
	req.Total = decimal.NewFromFloat(999)
	_, err := svc.Create(context.Background(), uuid.New(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ob.events) != 0 {
		t.Fatalf("expected no events on rejected order")
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _, _ := buildOrderService(t)
	tableID := uuid.New()

	req := validCreateRequest(&tableID)
	req.Items = nil
	_, err := svc.Create(context.Background(), uuid.New(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderDineInRequiresTable(t *testing.T) {
	svc, _, _, _ := buildOrderService(t)

	req := validCreateRequest(nil)
	_, err := svc.Create(context.Background(), uuid.New(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderTakeoutNeedsNoTable(t *testing.T) {
	svc, _, _, alloc := buildOrderService(t)

	req := validCreateRequest(nil)
	req.Type = string(enums.OrderTypeTakeout)
	_, err := svc.Create(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("create takeout: %v", err)
	}
	if len(alloc.occupied) != 0 {
		t.Fatalf("takeout order should not occupy a table")
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	svc, repo, ob, alloc := buildOrderService(t)
	userID := uuid.New()
	tableID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, validCreateRequest(&tableID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ob.events = nil

	updated, err := svc.UpdateStatus(context.Background(), userID, dto.ID, UpdateStatusRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", updated.Status)
	}
	if len(repo.statusSets) != 0 {
		t.Fatalf("no-op must not write status")
	}
	if len(ob.events) != 0 {
		t.Fatalf("no-op must not emit events")
	}
	if len(alloc.released) != 0 {
		t.Fatalf("no-op must not touch the table")
	}
}

func TestUpdateStatusRejectsDisallowedTransition(t *testing.T) {
	svc, repo, _, _ := buildOrderService(t)
	userID := uuid.New()
	orderID := uuid.New()
	repo.orders[orderID] = &models.Order{
		ID:     orderID,
		UserID: userID,
		Status: enums.OrderStatusCompleted,
	}

	_, err := svc.UpdateStatus(context.Background(), userID, orderID, UpdateStatusRequest{Status: "pending"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateStatusToCompletedFreesTable(t *testing.T) {
	svc, repo, ob, alloc := buildOrderService(t)
	userID := uuid.New()
	tableID := uuid.New()
	orderID := uuid.New()
	repo.orders[orderID] = &models.Order{
		ID:      orderID,
		UserID:  userID,
		TableID: &tableID,
		Status:  enums.OrderStatusServed,
	}

	updated, err := svc.UpdateStatus(context.Background(), userID, orderID, UpdateStatusRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if len(alloc.released) != 1 || alloc.released[0] != tableID {
		t.Fatalf("expected table to be released")
	}
	if len(ob.events) != 1 || ob.events[0].EventType != enums.OutboxEventOrderStatusChanged {
		t.Fatalf("expected status change event")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _, _, _ := buildOrderService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), UpdateStatusRequest{Status: "confirmed"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAnalyticsMergesAggregates(t *testing.T) {
	svc, repo, _, _ := buildOrderService(t)
	repo.countOrders = 12
	repo.sumRevenue = decimal.NewFromFloat(2400.50)
	repo.avgValue = decimal.NewFromFloat(200.04)
	repo.statusCounts = map[string]int64{"pending": 3, "completed": 9}

	out, err := svc.Analytics(context.Background(), uuid.New(), AnalyticsFilters{})
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if out.TotalOrders != 12 {
		t.Fatalf("expected 12 orders, got %d", out.TotalOrders)
	}
	if !out.TotalRevenue.Equal(decimal.NewFromFloat(2400.50)) {
		t.Fatalf("unexpected revenue %s", out.TotalRevenue)
	}
	if out.StatusCounts["completed"] != 9 {
		t.Fatalf("unexpected status counts %v", out.StatusCounts)
	}
}
