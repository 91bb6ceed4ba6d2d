package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

func insertReservations(t *testing.T, database *mongo.Database, reservations ...models.Reservation) {
	t.Helper()
	for i := range reservations {
		insertDoc(t, database, reservationsCollection, reservations[i])
	}
}

func storedReservation(tenantID utils.SixID, arrival, departure time.Time, status models.ReservationStatus) models.Reservation {
	res := models.Reservation{
		TenantID:  tenantID,
		Arrival:   arrival,
		Departure: departure,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	res.GenID()
	return res
}

func TestReservationService_FindForPeriod(t *testing.T) {
	database := utils.SetupTestDB(t, "test_reservation_service", reservationsCollection)
	svc := NewReservationService(database)

	tenant := utils.NewSixID()
	periodEnd := date(2025, 8, 31)

	inside := storedReservation(tenant, date(2025, 8, 10), date(2025, 8, 15), models.ReservationConfirmed)
	// Arrived before the period but possibly overlapping it; the query must
	// keep it and let apportionment decide.
	straddling := storedReservation(tenant, date(2025, 7, 28), date(2025, 8, 3), models.ReservationConfirmed)
	after := storedReservation(tenant, date(2025, 9, 5), date(2025, 9, 10), models.ReservationConfirmed)
	pending := storedReservation(tenant, date(2025, 8, 12), date(2025, 8, 14), models.ReservationPending)
	removed := storedReservation(tenant, date(2025, 8, 20), date(2025, 8, 22), models.ReservationConfirmed)
	removed.Deleted = true
	foreign := storedReservation(utils.NewSixID(), date(2025, 8, 10), date(2025, 8, 12), models.ReservationConfirmed)
	insertReservations(t, database, inside, straddling, after, pending, removed, foreign)

	found, err := svc.FindForPeriod(context.Background(), tenant, periodEnd)
	require.NoError(t, err)
	require.Len(t, found, 2)
	// Sorted by arrival
	assert.Equal(t, straddling.ID, found[0].ID)
	assert.Equal(t, inside.ID, found[1].ID)
}

func TestReservationService_FindActiveFrom(t *testing.T) {
	database := utils.SetupTestDB(t, "test_reservation_service", reservationsCollection)
	svc := NewReservationService(database)

	tenant := utils.NewSixID()
	day := date(2025, 8, 15)

	departed := storedReservation(tenant, date(2025, 8, 1), date(2025, 8, 10), models.ReservationConfirmed)
	leavingToday := storedReservation(tenant, date(2025, 8, 12), day, models.ReservationConfirmed)
	staying := storedReservation(tenant, date(2025, 8, 14), date(2025, 8, 18), models.ReservationConfirmed)
	future := storedReservation(tenant, date(2025, 8, 20), date(2025, 8, 25), models.ReservationConfirmed)
	insertReservations(t, database, departed, leavingToday, staying, future)

	found, err := svc.FindActiveFrom(context.Background(), tenant, day)
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, leavingToday.ID, found[0].ID)
	assert.Equal(t, staying.ID, found[1].ID)
	assert.Equal(t, future.ID, found[2].ID)
}

func TestReservationService_FindStalePending(t *testing.T) {
	database := utils.SetupTestDB(t, "test_reservation_service", reservationsCollection)
	svc := NewReservationService(database)

	tenant := utils.NewSixID()
	now := time.Now().UTC()
	cutoff := now.Add(-48 * time.Hour)

	stale := storedReservation(tenant, date(2025, 9, 10), date(2025, 9, 12), models.ReservationPending)
	stale.PaymentStatus = models.PaymentPending
	stale.CreatedAt = now.Add(-50 * time.Hour)

	fresh := storedReservation(tenant, date(2025, 9, 10), date(2025, 9, 12), models.ReservationPending)
	fresh.PaymentStatus = models.PaymentPending
	fresh.CreatedAt = now.Add(-10 * time.Hour)

	paid := storedReservation(tenant, date(2025, 9, 10), date(2025, 9, 12), models.ReservationPending)
	paid.PaymentStatus = models.PaymentPaid
	paid.CreatedAt = now.Add(-50 * time.Hour)

	confirmed := storedReservation(tenant, date(2025, 9, 10), date(2025, 9, 12), models.ReservationConfirmed)
	confirmed.PaymentStatus = models.PaymentPending
	confirmed.CreatedAt = now.Add(-50 * time.Hour)

	insertReservations(t, database, stale, fresh, paid, confirmed)

	found, err := svc.FindStalePending(context.Background(), tenant, cutoff)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.ID, found[0].ID)
}

func TestReservationService_FindStalePendingSpansTenantsWithZeroID(t *testing.T) {
	database := utils.SetupTestDB(t, "test_reservation_service", reservationsCollection)
	svc := NewReservationService(database)

	now := time.Now().UTC()
	cutoff := now.Add(-48 * time.Hour)

	a := storedReservation(utils.NewSixID(), date(2025, 9, 10), date(2025, 9, 12), models.ReservationPending)
	a.PaymentStatus = models.PaymentPending
	a.CreatedAt = now.Add(-72 * time.Hour)
	b := storedReservation(utils.NewSixID(), date(2025, 9, 10), date(2025, 9, 12), models.ReservationPending)
	b.PaymentStatus = models.PaymentPending
	b.CreatedAt = now.Add(-72 * time.Hour)
	insertReservations(t, database, a, b)

	found, err := svc.FindStalePending(context.Background(), utils.SixID{}, cutoff)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestReservationService_ExpireGroupEmptyRowSet(t *testing.T) {
	database := utils.SetupTestDB(t, "test_reservation_service", reservationsCollection)
	svc := NewReservationService(database)

	modified, err := svc.ExpireGroup(context.Background(), "GRP-1", nil, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, modified)
}
