package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	"github.com/jcastillo-dev/comanda-backend/pkg/logger"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
)

// A given item alerts at most once per window even when many cycles run.
const defaultAlertWindow = 24 * time.Hour

type lowStockReader interface {
	ListAllLowStock(ctx context.Context) ([]models.InventoryItem, error)
}

type outboxExistenceChecker interface {
	ExistsSince(eventType enums.OutboxEventType, aggregateType enums.OutboxAggregateType, aggregateID uuid.UUID, since time.Time) (bool, error)
}

// LowStockJobParams configure the inventory alert job.
type LowStockJobParams struct {
	Logger      *logger.Logger
	DB          txRunner
	Inventory   lowStockReader
	Outbox      outboxEmitter
	OutboxRepo  outboxExistenceChecker
	AlertWindow time.Duration
}

// NewLowStockJob builds the job that raises an event for every understocked
// inventory item across all tenants.
func NewLowStockJob(params LowStockJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory reader required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox service required")
	}
	if params.OutboxRepo == nil {
		return nil, fmt.Errorf("outbox repository required")
	}
	window := params.AlertWindow
	if window <= 0 {
		window = defaultAlertWindow
	}
	return &lowStockJob{
		logg:       params.Logger,
		db:         params.DB,
		inventory:  params.Inventory,
		outbox:     params.Outbox,
		outboxRepo: params.OutboxRepo,
		window:     window,
		now:        time.Now,
	}, nil
}

type lowStockJob struct {
	logg       *logger.Logger
	db         txRunner
	inventory  lowStockReader
	outbox     outboxEmitter
	outboxRepo outboxExistenceChecker
	window     time.Duration
	now        func() time.Time
}

func (j *lowStockJob) Name() string { return "low-stock-report" }

func (j *lowStockJob) Run(ctx context.Context) error {
	items, err := j.inventory.ListAllLowStock(ctx)
	if err != nil {
		return fmt.Errorf("query low stock items: %w", err)
	}
	emitted := 0
	for i := range items {
		sent, err := j.emitAlert(ctx, &items[i])
		if err != nil {
			return err
		}
		if sent {
			emitted++
		}
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"low_stock": len(items),
		"emitted":   emitted,
	})
	j.logg.Info(logCtx, "low stock report complete")
	return nil
}

func (j *lowStockJob) emitAlert(ctx context.Context, item *models.InventoryItem) (bool, error) {
	since := j.now().UTC().Add(-j.window)
	exists, err := j.outboxRepo.ExistsSince(enums.OutboxEventInventoryLowStock, enums.OutboxAggregateInventory, item.ID, since)
	if err != nil {
		return false, fmt.Errorf("check low stock alert existence: %w", err)
	}
	if exists {
		return false, nil
	}
	err = j.db.WithTx(ctx, func(tx *gorm.DB) error {
		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventInventoryLowStock,
			AggregateType: enums.OutboxAggregateInventory,
			AggregateID:   item.ID,
			TenantID:      item.UserID,
			OccurredAt:    j.now().UTC(),
			Data: outbox.LowStockData{
				ItemID:       item.ID,
				Name:         item.Name,
				CurrentStock: item.CurrentStock,
				MinStock:     item.MinStock,
			},
		}
		return j.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return false, fmt.Errorf("emit low stock alert: %w", err)
	}
	return true, nil
}
