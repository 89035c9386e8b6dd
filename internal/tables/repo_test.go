package tables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

func setupTablesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	diningTables := `
CREATE TABLE IF NOT EXISTS dining_tables (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  number INTEGER NOT NULL,
  capacity INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'available',
  location TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	uniqueNumber := `
CREATE UNIQUE INDEX IF NOT EXISTS ux_dining_tables_user_number
  ON dining_tables (user_id, number);`
	require.NoError(t, db.Exec(diningTables).Error)
	require.NoError(t, db.Exec(uniqueNumber).Error)
	return db
}

func TestRepoCreateDuplicateNumberMapsToValidation(t *testing.T) {
	db := setupTablesTestDB(t)
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)

	userID := uuid.New()
	_, err = svc.Create(context.Background(), userID, CreateTableRequest{Number: 5, Capacity: 4})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userID, CreateTableRequest{Number: 5, Capacity: 2})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, "table number already exists", typed.Message())
}

func TestRepoCreateSameNumberAcrossTenants(t *testing.T) {
	db := setupTablesTestDB(t)
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), CreateTableRequest{Number: 5, Capacity: 4})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), CreateTableRequest{Number: 5, Capacity: 4})
	require.NoError(t, err)
}
