package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
	"github.com/jcastillo-dev/comanda-backend/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// TableAllocator flips dining table occupancy when orders seat or free a
// table. The default implementation writes through the caller's transaction.
type TableAllocator interface {
	Occupy(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID) error
	Release(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID) error
}

// Service defines the order lifecycle operations used by the controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters, limit int) (*ListResponse, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error)
	Analytics(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (*AnalyticsResponse, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	tables TableAllocator
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, tables TableAllocator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if tables == nil {
		return nil, fmt.Errorf("table allocator required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		outbox: outbox,
		tables: tables,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	orderType, err := enums.ParseOrderType(req.Type)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
		}
	}
	if orderType.RequiresTable() && req.TableID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dine-in orders require a table")
	}
	if req.Subtotal.IsNegative() || req.Tax.IsNegative() || req.Tip.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts cannot be negative")
	}
	if !req.Total.Equal(req.Subtotal.Add(req.Tax).Add(req.Tip)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total must equal subtotal plus tax plus tip")
	}

	order := reqToModel(userID, orderType, req)

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if order.TableID != nil {
			if err := s.tables.Occupy(ctx, tx, userID, *order.TableID); err != nil {
				return err
			}
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderCreated,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   order.ID,
			TenantID:      userID,
			Data: outbox.OrderCreatedData{
				OrderID: order.ID,
				TableID: order.TableID,
				Type:    order.Type,
				Total:   order.Total,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := fromModel(order, nil)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filters ListFilters, limit int) (*ListResponse, error) {
	rows, err := s.repo.List(ctx, userID, filters, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return &ListResponse{Orders: rows}, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error) {
	target, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	var updated *OrderDTO
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, userID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		// Repeating the current status is a no-op: no write, no event.
		if order.Status == target {
			dto := fromModel(order, nil)
			updated = &dto
			return nil
		}
		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot transition order from %s to %s", order.Status, target))
		}

		if err := repo.UpdateStatus(ctx, userID, orderID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		if target.FreesTable() && order.TableID != nil {
			if err := s.tables.Release(ctx, tx, userID, *order.TableID); err != nil {
				return err
			}
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderStatusChanged,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   order.ID,
			TenantID:      userID,
			Data: outbox.OrderStatusChangedData{
				OrderID:    order.ID,
				FromStatus: order.Status,
				ToStatus:   target,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		order.Status = target
		dto := fromModel(order, nil)
		updated = &dto
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *service) Analytics(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (*AnalyticsResponse, error) {
	out := &AnalyticsResponse{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		count, err := s.repo.CountOrders(groupCtx, userID, filters)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
		}
		out.TotalOrders = count
		return nil
	})
	group.Go(func() error {
		sum, err := s.repo.SumRevenue(groupCtx, userID, filters)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
		}
		out.TotalRevenue = sum
		return nil
	})
	group.Go(func() error {
		avg, err := s.repo.AverageOrderValue(groupCtx, userID, filters)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average order value")
		}
		out.AverageOrderValue = avg
		return nil
	})
	group.Go(func() error {
		counts, err := s.repo.CountByStatus(groupCtx, userID, filters)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count by status")
		}
		out.StatusCounts = counts
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type tableAllocatorImpl struct{}

// NewTableAllocator exposes the default occupancy implementation.
func NewTableAllocator() TableAllocator {
	return tableAllocatorImpl{}
}

func (tableAllocatorImpl) Occupy(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID) error {
	return setTableStatus(ctx, tx, userID, tableID, enums.TableStatusOccupied)
}

func (tableAllocatorImpl) Release(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID) error {
	return setTableStatus(ctx, tx, userID, tableID, enums.TableStatusAvailable)
}

func setTableStatus(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID, status enums.TableStatus) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for table status change")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE dining_tables
		SET status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, status, userID, tableID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "update table status")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "table not found")
	}
	return nil
}
