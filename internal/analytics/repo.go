package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ordersBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to)
}

// PeriodStats counts orders and sums revenue in [from, to).
func (r *Repository) PeriodStats(ctx context.Context, userID uuid.UUID, from, to time.Time) (PeriodStats, error) {
	type row struct {
		Orders  int64               `gorm:"column:orders"`
		Revenue decimal.NullDecimal `gorm:"column:revenue"`
	}

	var out row
	err := r.ordersBetween(ctx, userID, from, to).
		Select("COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Scan(&out).Error
	if err != nil {
		return PeriodStats{}, err
	}

	stats := PeriodStats{Orders: out.Orders, Revenue: decimal.Zero}
	if out.Revenue.Valid {
		stats.Revenue = out.Revenue.Decimal
	}
	return stats, nil
}

// CountLowStock counts the tenant's understocked inventory items.
func (r *Repository) CountLowStock(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("user_id = ? AND current_stock <= min_stock", userID).
		Count(&count).Error
	return count, err
}

// CountOccupiedTables counts tables currently holding diners.
func (r *Repository) CountOccupiedTables(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DiningTable{}).
		Where("user_id = ? AND status = ?", userID, enums.TableStatusOccupied).
		Count(&count).Error
	return count, err
}

// ListOrdersBetween loads full order rows for in-memory line item ranking.
func (r *Repository) ListOrdersBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Find(&orders).Error
	return orders, err
}

// SalesByDay groups orders into a per-day count and revenue series,
// oldest day first. DATE() works on both postgres and sqlite.
func (r *Repository) SalesByDay(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SalesPoint, error) {
	type row struct {
		Day     string              `gorm:"column:day"`
		Orders  int64               `gorm:"column:orders"`
		Revenue decimal.NullDecimal `gorm:"column:revenue"`
	}

	var rows []row
	err := r.ordersBetween(ctx, userID, from, to).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]SalesPoint, 0, len(rows))
	for _, r := range rows {
		point := SalesPoint{Date: r.Day, Orders: r.Orders, Revenue: decimal.Zero}
		if r.Revenue.Valid {
			point.Revenue = r.Revenue.Decimal
		}
		series = append(series, point)
	}
	return series, nil
}
