package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

// Dashboards rank at most this many menu items.
const popularItemLimit = 5

// Service composes the read-only aggregates behind the analytics endpoints.
type Service interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error)
	Sales(ctx context.Context, userID uuid.UUID, from, to time.Time) (*SalesResponse, error)
}

type repository interface {
	PeriodStats(ctx context.Context, userID uuid.UUID, from, to time.Time) (PeriodStats, error)
	CountLowStock(ctx context.Context, userID uuid.UUID) (int64, error)
	CountOccupiedTables(ctx context.Context, userID uuid.UUID) (int64, error)
	ListOrdersBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Order, error)
	SalesByDay(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SalesPoint, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies for the analytics service.
type ServiceParams struct {
	Repo repository

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewService constructs an analytics service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("analytics repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	now := s.now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	weekStart := dayStart.AddDate(0, 0, -6)
	monthStart := dayStart.AddDate(0, 0, -29)
	end := dayStart.Add(24 * time.Hour)

	out := &DashboardResponse{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		stats, err := s.repo.PeriodStats(groupCtx, userID, dayStart, end)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "today stats")
		}
		out.Today = stats
		return nil
	})
	group.Go(func() error {
		stats, err := s.repo.PeriodStats(groupCtx, userID, weekStart, end)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "week stats")
		}
		out.Week = stats
		return nil
	})
	group.Go(func() error {
		stats, err := s.repo.PeriodStats(groupCtx, userID, monthStart, end)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "month stats")
		}
		out.Month = stats
		return nil
	})
	group.Go(func() error {
		count, err := s.repo.CountLowStock(groupCtx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count low stock")
		}
		out.LowStockItems = count
		return nil
	})
	group.Go(func() error {
		count, err := s.repo.CountOccupiedTables(groupCtx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count occupied tables")
		}
		out.OccupiedTables = count
		return nil
	})
	group.Go(func() error {
		orders, err := s.repo.ListOrdersBetween(groupCtx, userID, monthStart, end)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders for ranking")
		}
		out.PopularItems = rankItems(orders, popularItemLimit)
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Sales(ctx context.Context, userID uuid.UUID, from, to time.Time) (*SalesResponse, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales window must end after it starts")
	}

	series, err := s.repo.SalesByDay(ctx, userID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sales by day")
	}
	return &SalesResponse{Series: series}, nil
}

// rankItems aggregates denormalized line items by name and returns the top
// sellers by quantity.
func rankItems(orders []models.Order, limit int) []PopularItem {
	byName := map[string]*PopularItem{}
	for i := range orders {
		for _, item := range orders[i].Items {
			entry, ok := byName[item.Name]
			if !ok {
				entry = &PopularItem{Name: item.Name}
				byName[item.Name] = entry
			}
			entry.Quantity += int64(item.Quantity)
			entry.Revenue = entry.Revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	ranked := make([]PopularItem, 0, len(byName))
	for _, entry := range byName {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
