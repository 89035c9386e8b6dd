package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// Repository defines persistence operations for orders. Every query is
// scoped to the owning tenant.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters, limit int) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) error
	CountOrders(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (int64, error)
	SumRevenue(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (decimal.Decimal, error)
	AverageOrderValue(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (map[string]int64, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type orderRow struct {
	models.Order
	TableNumber *int `gorm:"column:table_number"`
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, filters ListFilters, limit int) ([]OrderDTO, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.*, dining_tables.number AS table_number").
		Joins("LEFT JOIN dining_tables ON dining_tables.id = orders.table_id").
		Where("orders.user_id = ?", userID)

	if filters.Status != nil {
		query = query.Where("orders.status = ?", *filters.Status)
	}
	if filters.TableID != nil {
		query = query.Where("orders.table_id = ?", *filters.TableID)
	}
	if filters.From != nil {
		query = query.Where("orders.created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("orders.created_at < ?", *filters.To)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []orderRow
	if err := query.Order("orders.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, fromModel(&rows[i].Order, rows[i].TableNumber))
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND id = ?", userID, orderID).
		UpdateColumn("status", status).Error
}

func (r *repository) windowed(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at < ?", *filters.To)
	}
	return query
}

func (r *repository) CountOrders(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (int64, error) {
	var count int64
	err := r.windowed(ctx, userID, filters).Count(&count).Error
	return count, err
}

func (r *repository) SumRevenue(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.windowed(ctx, userID, filters).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *repository) AverageOrderValue(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	err := r.windowed(ctx, userID, filters).
		Select("COALESCE(AVG(total), 0)").
		Scan(&avg).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal, nil
}

func (r *repository) CountByStatus(ctx context.Context, userID uuid.UUID, filters AnalyticsFilters) (map[string]int64, error) {
	type statusCount struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}

	var rows []statusCount
	err := r.windowed(ctx, userID, filters).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListSince loads full order rows created at or after the cutoff, oldest
// first. The analytics service aggregates line items from these in memory.
func (r *repository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}
