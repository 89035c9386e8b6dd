package tables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

type stubTablesRepo struct {
	tables    map[uuid.UUID]*models.DiningTable
	createErr error
	updateErr error
}

func newStubTablesRepo() *stubTablesRepo {
	return &stubTablesRepo{tables: map[uuid.UUID]*models.DiningTable{}}
}

func (s *stubTablesRepo) Create(ctx context.Context, table *models.DiningTable) error {
	if s.createErr != nil {
		return s.createErr
	}
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	s.tables[table.ID] = table
	return nil
}

func (s *stubTablesRepo) FindByID(ctx context.Context, userID, tableID uuid.UUID) (*models.DiningTable, error) {
	table, ok := s.tables[tableID]
	if !ok || table.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return table, nil
}

func (s *stubTablesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DiningTable, error) {
	var out []models.DiningTable
	for _, table := range s.tables {
		if table.UserID == userID {
			out = append(out, *table)
		}
	}
	return out, nil
}

func (s *stubTablesRepo) Update(ctx context.Context, userID, tableID uuid.UUID, columns map[string]any) (int64, error) {
	if s.updateErr != nil {
		return 0, s.updateErr
	}
	table, ok := s.tables[tableID]
	if !ok || table.UserID != userID {
		return 0, nil
	}
	if capacity, ok := columns["capacity"].(int); ok {
		table.Capacity = capacity
	}
	if status, ok := columns["status"].(enums.TableStatus); ok {
		table.Status = status
	}
	if location, ok := columns["location"].(string); ok {
		table.Location = &location
	}
	return 1, nil
}

func TestTablesCreateDefaultsToAvailable(t *testing.T) {
	repo := newStubTablesRepo()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	userID := uuid.New()
	dto, err := svc.Create(context.Background(), userID, CreateTableRequest{Number: 4, Capacity: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Status != enums.TableStatusAvailable {
		t.Fatalf("expected available status, got %s", dto.Status)
	}
	if dto.Number != 4 {
		t.Fatalf("expected table number 4, got %d", dto.Number)
	}
}

func TestTablesUpdateNotFound(t *testing.T) {
	repo := newStubTablesRepo()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	capacity := 6
	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateTableRequest{Capacity: &capacity})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTablesUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newStubTablesRepo()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	bad := "under-water"
	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateTableRequest{Status: &bad})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTablesUpdateAppliesStatus(t *testing.T) {
	repo := newStubTablesRepo()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	userID := uuid.New()
	created, err := svc.Create(context.Background(), userID, CreateTableRequest{Number: 1, Capacity: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := string(enums.TableStatusCleaning)
	updated, err := svc.Update(context.Background(), userID, created.ID, UpdateTableRequest{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != enums.TableStatusCleaning {
		t.Fatalf("expected cleaning status, got %s", updated.Status)
	}
}

func TestTablesCreateMapsDuplicateNumber(t *testing.T) {
	repo := newStubTablesRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "ux_dining_tables_user_number"}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateTableRequest{Number: 5, Capacity: 4})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "table number already exists" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}
