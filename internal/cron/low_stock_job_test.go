package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
)

type fakeLowStockReader struct {
	items []models.InventoryItem
}

func (f *fakeLowStockReader) ListAllLowStock(context.Context) ([]models.InventoryItem, error) {
	return f.items, nil
}

type fakeOutboxEmitter struct {
	events []outbox.DomainEvent
}

func (f *fakeOutboxEmitter) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeExistenceChecker struct {
	existing map[uuid.UUID]bool
}

func (f *fakeExistenceChecker) ExistsSince(_ enums.OutboxEventType, _ enums.OutboxAggregateType, aggregateID uuid.UUID, _ time.Time) (bool, error) {
	return f.existing[aggregateID], nil
}

func lowStockItem(name string, current, min int64) models.InventoryItem {
	return models.InventoryItem{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Name:         name,
		CurrentStock: decimal.NewFromInt(current),
		MinStock:     decimal.NewFromInt(min),
	}
}

func newLowStockJob(t *testing.T, reader *fakeLowStockReader, emitter *fakeOutboxEmitter, checker *fakeExistenceChecker) Job {
	t.Helper()
	job, err := NewLowStockJob(LowStockJobParams{
		Logger:     testLogger(),
		DB:         fakeTxRunner{},
		Inventory:  reader,
		Outbox:     emitter,
		OutboxRepo: checker,
	})
	if err != nil {
		t.Fatalf("NewLowStockJob: %v", err)
	}
	return job
}

func TestLowStockJobEmitsPerItem(t *testing.T) {
	items := []models.InventoryItem{
		lowStockItem("masa harina", 2, 10),
		lowStockItem("queso oaxaca", 0, 5),
	}
	reader := &fakeLowStockReader{items: items}
	emitter := &fakeOutboxEmitter{}
	checker := &fakeExistenceChecker{existing: map[uuid.UUID]bool{}}
	job := newLowStockJob(t, reader, emitter, checker)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(emitter.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(emitter.events))
	}
	first := emitter.events[0]
	if first.EventType != enums.OutboxEventInventoryLowStock {
		t.Fatalf("unexpected event type %s", first.EventType)
	}
	if first.TenantID != items[0].UserID {
		t.Fatal("expected tenant id carried from item owner")
	}
	data, ok := first.Data.(outbox.LowStockData)
	if !ok {
		t.Fatalf("unexpected payload type %T", first.Data)
	}
	if data.Name != "masa harina" {
		t.Fatalf("unexpected item name %s", data.Name)
	}
}

func TestLowStockJobSkipsRecentAlerts(t *testing.T) {
	item := lowStockItem("frijol negro", 1, 8)
	reader := &fakeLowStockReader{items: []models.InventoryItem{item}}
	emitter := &fakeOutboxEmitter{}
	checker := &fakeExistenceChecker{existing: map[uuid.UUID]bool{item.ID: true}}
	job := newLowStockJob(t, reader, emitter, checker)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(emitter.events) != 0 {
		t.Fatalf("expected no events, got %d", len(emitter.events))
	}
}
