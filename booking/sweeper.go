package booking

import (
	"context"

	"courtside/db"
	"courtside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SweepExpired marks every Confirmed booking whose end has passed as
// Completed and releases its slot claims. Runs before booking reads and
// stats so status reflects reality at read time; main also runs it on a
// ticker. Idempotent: with nothing newly expired it matches zero rows.
func SweepExpired(ctx context.Context) error {
	today, now := Now()
	return sweepExpiredAt(ctx, today, now)
}

// expired reports whether a booking ending at endtime on date has passed
// relative to today/now. endtime == now counts as expired: intervals are
// half-open, the booked hour is over.
func expired(date, endtime, today, now string) bool {
	return date < today || (date == today && endtime <= now)
}

func sweepExpiredAt(ctx context.Context, today, now string) error {
	_, err := db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// coarse date prefilter; the expired predicate decides per booking
		cur, err := db.BookingsCollection.Find(sc, bson.M{
			"status": models.StatusConfirmed,
			"date":   bson.M{"$lte": today},
		})
		if err != nil {
			return nil, err
		}
		var candidates []models.Booking
		if err := cur.All(sc, &candidates); err != nil {
			return nil, err
		}

		ids := make([]string, 0, len(candidates))
		for _, b := range candidates {
			if expired(b.Date, b.EndTime, today, now) {
				ids = append(ids, b.BookingID)
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}

		if _, err := db.BookingsCollection.UpdateMany(sc,
			bson.M{"bookingid": bson.M{"$in": ids}},
			bson.M{"$set": bson.M{"status": models.StatusCompleted}}); err != nil {
			return nil, err
		}
		_, err = db.SlotClaimsCollection.DeleteMany(sc,
			bson.M{"bookingid": bson.M{"$in": ids}})
		return nil, err
	})
	return err
}
