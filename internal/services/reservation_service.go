package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/db"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/models"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// IReservationService reads reservations for the analytics engine and writes
// the one state transition this system owns: expiring a stale booking group.
type IReservationService interface {
	// FindForPeriod returns the tenant's confirmed reservations whose
	// arrival falls before the period end. Departure-side pruning happens in
	// the apportionment step, not in the query.
	FindForPeriod(ctx context.Context, tenantID utils.SixID, periodEnd time.Time) ([]models.Reservation, error)
	// FindActiveFrom returns confirmed reservations still in-house or
	// arriving on/after the given day.
	FindActiveFrom(ctx context.Context, tenantID utils.SixID, from time.Time) ([]models.Reservation, error)
	// FindStalePending returns payment-pending reservations created before
	// the cutoff. A zero tenantID spans all tenants.
	FindStalePending(ctx context.Context, tenantID utils.SixID, cutoff time.Time) ([]models.Reservation, error)
	// ExpireGroup transitions every given row of one booking group to
	// expired inside a single transaction; all rows move or none do.
	// Returns the number of rows actually transitioned.
	ExpireGroup(ctx context.Context, groupID string, rowIDs []utils.SixID, now time.Time) (int64, error)
}

const reservationsCollection = "reservations"

// reservationService implements IReservationService on MongoDB.
type reservationService struct {
	db *mongo.Database
}

// NewReservationService creates a new ReservationService.
func NewReservationService(database *mongo.Database) IReservationService {
	return &reservationService{db: database}
}

func (s *reservationService) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Reservation, error) {
	cursor, err := s.db.Collection(reservationsCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (s *reservationService) FindForPeriod(ctx context.Context, tenantID utils.SixID, periodEnd time.Time) ([]models.Reservation, error) {
	filter := bson.M{
		"tenant_id": tenantID,
		"deleted":   false,
		"status":    models.ReservationConfirmed,
		"arrival":   bson.M{"$lt": periodEnd},
	}
	return s.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "arrival", Value: 1}}))
}

func (s *reservationService) FindActiveFrom(ctx context.Context, tenantID utils.SixID, from time.Time) ([]models.Reservation, error) {
	filter := bson.M{
		"tenant_id": tenantID,
		"deleted":   false,
		"status":    models.ReservationConfirmed,
		"departure": bson.M{"$gte": from},
	}
	return s.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "arrival", Value: 1}}))
}

func (s *reservationService) FindStalePending(ctx context.Context, tenantID utils.SixID, cutoff time.Time) ([]models.Reservation, error) {
	filter := bson.M{
		"deleted":        false,
		"status":         models.ReservationPending,
		"payment_status": models.PaymentPending,
		"created_at":     bson.M{"$lt": cutoff},
	}
	if !tenantID.IsZero() {
		filter["tenant_id"] = tenantID
	}
	return s.find(ctx, filter)
}

// ExpireGroup runs all row updates of one booking group inside a single
// transaction. Rows are re-matched on the pending filter inside the
// transaction, so a concurrent sweep or payment cannot be overwritten and a
// re-run finds nothing left to modify.
func (s *reservationService) ExpireGroup(ctx context.Context, groupID string, rowIDs []utils.SixID, now time.Time) (int64, error) {
	if len(rowIDs) == 0 {
		return 0, nil
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return 0, fmt.Errorf("failed to start session for group %s: %w", groupID, err)
	}
	defer session.EndSession(ctx)

	update := bson.M{"$set": bson.M{
		"status":         models.ReservationExpired,
		"payment_status": models.PaymentExpired,
		"expired_at":     now,
		"updated_at":     now,
	}}

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		buffer := db.NewBulkBuffer(s.db.Collection(reservationsCollection), db.DefaultFlushThreshold)
		for _, id := range rowIDs {
			model := mongo.NewUpdateOneModel().
				SetFilter(bson.M{
					"_id":            id,
					"status":         models.ReservationPending,
					"payment_status": models.PaymentPending,
				}).
				SetUpdate(update)
			if err := buffer.Add(sc, model); err != nil {
				return nil, err
			}
		}
		if err := buffer.Flush(sc); err != nil {
			return nil, err
		}
		return buffer.Modified(), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to expire group %s: %w", groupID, err)
	}

	return result.(int64), nil
}
