package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

// Service defines inventory operations used by the controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResponse, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	Alerts(ctx context.Context, userID uuid.UUID) (*AlertsResponse, error)
}

type repository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.InventoryItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, columns map[string]any) (int64, error)
	ListLowStock(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies for the inventory service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs an inventory service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if req.CurrentStock.IsNegative() || req.MinStock.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}
	if req.CostPerUnit.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per unit cannot be negative")
	}

	item := &models.InventoryItem{
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		CostPerUnit:  req.CostPerUnit,
		Supplier:     req.Supplier,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
	}

	dto := fromModel(item)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResponse, error) {
	rows, err := s.repo.List(ctx, userID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, fromModel(&rows[i]))
	}
	return &ListResponse{Items: items}, nil
}

func (s *service) Update(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	columns := map[string]any{}
	if req.Name != nil {
		columns["name"] = *req.Name
	}
	if req.Category != nil {
		columns["category"] = *req.Category
	}
	if req.Unit != nil {
		columns["unit"] = *req.Unit
	}
	if req.CurrentStock != nil {
		if req.CurrentStock.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
		}
		columns["current_stock"] = *req.CurrentStock
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
		}
		columns["min_stock"] = *req.MinStock
	}
	if req.CostPerUnit != nil {
		if req.CostPerUnit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per unit cannot be negative")
		}
		columns["cost_per_unit"] = *req.CostPerUnit
	}
	if req.Supplier != nil {
		columns["supplier"] = *req.Supplier
	}
	if len(columns) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, userID, itemID, columns)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}

	item, err := s.repo.FindByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload inventory item")
	}

	dto := fromModel(item)
	return &dto, nil
}

func (s *service) Alerts(ctx context.Context, userID uuid.UUID) (*AlertsResponse, error) {
	rows, err := s.repo.ListLowStock(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock")
	}

	alerts := make([]AlertDTO, 0, len(rows))
	for i := range rows {
		deficit := rows[i].Deficit()
		if deficit.IsNegative() {
			deficit = decimal.Zero
		}
		alerts = append(alerts, AlertDTO{
			ItemDTO: fromModel(&rows[i]),
			Deficit: deficit,
		})
	}
	return &AlertsResponse{Alerts: alerts}, nil
}
