package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db"
	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

// Service defines the floor management behavior used by the controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateTableRequest) (*TableDTO, error)
	List(ctx context.Context, userID uuid.UUID) (*ListResponse, error)
	Update(ctx context.Context, userID, tableID uuid.UUID, req UpdateTableRequest) (*TableDTO, error)
}

type repository interface {
	Create(ctx context.Context, table *models.DiningTable) error
	FindByID(ctx context.Context, userID, tableID uuid.UUID) (*models.DiningTable, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DiningTable, error)
	Update(ctx context.Context, userID, tableID uuid.UUID, columns map[string]any) (int64, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies for the tables service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a tables service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("tables repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateTableRequest) (*TableDTO, error) {
	table := &models.DiningTable{
		UserID:   userID,
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   enums.TableStatusAvailable,
		Location: req.Location,
	}
	if err := s.repo.Create(ctx, table); err != nil {
		if db.IsUniqueViolation(err, "ux_dining_tables_user_number") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "table number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create table")
	}

	dto := FromModel(table)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*ListResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tables")
	}

	tables := make([]TableDTO, 0, len(rows))
	for i := range rows {
		tables = append(tables, FromModel(&rows[i]))
	}
	return &ListResponse{Tables: tables}, nil
}

func (s *service) Update(ctx context.Context, userID, tableID uuid.UUID, req UpdateTableRequest) (*TableDTO, error) {
	columns := map[string]any{}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be positive")
		}
		columns["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		status, err := enums.ParseTableStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table status")
		}
		columns["status"] = status
	}
	if req.Location != nil {
		columns["location"] = *req.Location
	}
	if len(columns) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, userID, tableID, columns)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update table")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}

	table, err := s.repo.FindByID(ctx, userID, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload table")
	}

	dto := FromModel(table)
	return &dto, nil
}
