package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
)

type stubReservationsRepo struct {
	created []*models.Reservation
	overlap bool
}

func (s *stubReservationsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubReservationsRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	s.created = append(s.created, reservation)
	return nil
}

func (s *stubReservationsRepo) ExistsOverlap(ctx context.Context, userID, tableID uuid.UUID, start, end time.Time) (bool, error) {
	return s.overlap, nil
}

func (s *stubReservationsRepo) List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]ReservationDTO, error) {
	return nil, nil
}

func (s *stubReservationsRepo) FindDueForSeating(ctx context.Context, now time.Time, window time.Duration) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationsRepo) FindExpiredHolds(ctx context.Context, now time.Time, holdOver time.Duration) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationsRepo) MarkSeated(ctx context.Context, reservationID uuid.UUID, at time.Time) error {
	return nil
}

func (s *stubReservationsRepo) MarkReleased(ctx context.Context, reservationID uuid.UUID, at time.Time) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	events []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubTableFinder struct {
	table *models.DiningTable
}

func (s *stubTableFinder) FindByID(ctx context.Context, userID, tableID uuid.UUID) (*models.DiningTable, error) {
	if s.table == nil || s.table.UserID != userID || s.table.ID != tableID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.table, nil
}

func buildReservationService(t *testing.T, table *models.DiningTable) (Service, *stubReservationsRepo, *stubOutbox) {
	t.Helper()
	repo := &stubReservationsRepo{}
	ob := &stubOutbox{}
	svc, err := NewService(repo, stubTxRunner{}, ob, &stubTableFinder{table: table})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, ob
}

func TestCreateReservationEmitsEvent(t *testing.T) {
	userID := uuid.New()
	table := &models.DiningTable{ID: uuid.New(), UserID: userID, Number: 3, Capacity: 6}
	svc, repo, ob := buildReservationService(t, table)

	reservedAt := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)
	dto, err := svc.Create(context.Background(), userID, CreateReservationRequest{
		TableID:      table.ID,
		CustomerName: "Familia Ortega",
		PartySize:    4,
		ReservedAt:   reservedAt,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted reservation")
	}
	if dto.TableNumber == nil || *dto.TableNumber != 3 {
		t.Fatalf("expected joined table number 3")
	}
	if len(ob.events) != 1 || ob.events[0].EventType != enums.OutboxEventReservationCreated {
		t.Fatalf("expected reservation.created event")
	}
}

func TestCreateReservationRejectsBadTimestamp(t *testing.T) {
	userID := uuid.New()
	table := &models.DiningTable{ID: uuid.New(), UserID: userID, Number: 1, Capacity: 4}
	svc, _, _ := buildReservationService(t, table)

	_, err := svc.Create(context.Background(), userID, CreateReservationRequest{
		TableID:      table.ID,
		CustomerName: "Walk In",
		PartySize:    2,
		ReservedAt:   "tomorrow at eight",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateReservationRejectsForeignTable(t *testing.T) {
	table := &models.DiningTable{ID: uuid.New(), UserID: uuid.New(), Number: 1, Capacity: 4}
	svc, _, _ := buildReservationService(t, table)

	reservedAt := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	_, err := svc.Create(context.Background(), uuid.New(), CreateReservationRequest{
		TableID:      table.ID,
		CustomerName: "Wrong Tenant",
		PartySize:    2,
		ReservedAt:   reservedAt,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateReservationRejectsOversizedParty(t *testing.T) {
	userID := uuid.New()
	table := &models.DiningTable{ID: uuid.New(), UserID: userID, Number: 2, Capacity: 2}
	svc, _, _ := buildReservationService(t, table)

	reservedAt := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	_, err := svc.Create(context.Background(), userID, CreateReservationRequest{
		TableID:      table.ID,
		CustomerName: "Big Group",
		PartySize:    8,
		ReservedAt:   reservedAt,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateReservationRejectsDoubleBooking(t *testing.T) {
	userID := uuid.New()
	table := &models.DiningTable{ID: uuid.New(), UserID: userID, Number: 4, Capacity: 4}
	svc, repo, _ := buildReservationService(t, table)
	repo.overlap = true

	reservedAt := time.Now().Add(3 * time.Hour).UTC().Format(time.RFC3339)
	_, err := svc.Create(context.Background(), userID, CreateReservationRequest{
		TableID:      table.ID,
		CustomerName: "Second Booking",
		PartySize:    2,
		ReservedAt:   reservedAt,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("overlapping reservation must not be persisted")
	}
}
