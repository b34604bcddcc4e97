package booking

import (
	"context"
	"errors"
	"time"

	"courtside/apperr"
	"courtside/db"
	"courtside/models"
	"courtside/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Admit attempts to create a Confirmed booking for (facilityID, date,
// [start,end)). The overlap check and the insert run as one atomic unit, so
// of two racing admissions for intersecting intervals exactly one commits
// and the other surfaces Conflict. Per-hour SlotClaim documents back the
// transactional check with a hard uniqueness constraint: even under the
// weakest interleaving a second claim on the same hour dies on its _id.
func Admit(ctx context.Context, userID, facilityID, date, start, end string) (*models.Booking, error) {
	if err := validateRequest(date, start, end); err != nil {
		return nil, err
	}
	if facilityID == "" {
		return nil, apperr.New(apperr.Validation, "facilityId, date, startTime and endTime are required")
	}

	var facility models.Facility
	err := db.FacilitiesCollection.FindOne(ctx, bson.M{"facilityid": facilityID}).Decode(&facility)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Facility not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "facility lookup failed", err)
	}
	if facility.Status == models.FacilityMaintenance {
		return nil, apperr.New(apperr.Validation, "Facility is under maintenance")
	}

	newBooking := models.Booking{
		BookingID:  utils.GenerateID(14),
		UserID:     userID,
		FacilityID: facilityID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     models.StatusConfirmed,
		CreatedAt:  time.Now().Unix(),
	}

	_, err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		overlap := bson.M{
			"facilityid": facilityID,
			"date":       date,
			"status":     models.StatusConfirmed,
			"starttime":  bson.M{"$lt": end},
			"endtime":    bson.M{"$gt": start},
		}
		findErr := db.BookingsCollection.FindOne(sc, overlap).Err()
		if findErr == nil {
			return nil, apperr.New(apperr.Conflict, "Time slot is already booked")
		}
		if findErr != mongo.ErrNoDocuments {
			return nil, findErr
		}

		if _, insErr := db.BookingsCollection.InsertOne(sc, newBooking); insErr != nil {
			return nil, insErr
		}

		claims := make([]interface{}, 0, 2)
		for _, hour := range bookedHours(start, end) {
			claims = append(claims, models.SlotClaim{
				ID:        claimID(facilityID, date, hour),
				BookingID: newBooking.BookingID,
			})
		}
		if _, insErr := db.SlotClaimsCollection.InsertMany(sc, claims); insErr != nil {
			return nil, insErr
		}
		return nil, nil
	})
	if err != nil {
		return nil, admissionError(err)
	}

	return &newBooking, nil
}

// admissionError maps a failed transaction onto the error taxonomy. A
// duplicate claim key means another admission already owns an hour we
// wanted, which is a Conflict, not an infrastructure failure. A transient
// transaction error stays retryable and distinct from Conflict.
func admissionError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Wrap(apperr.Conflict, "Time slot is already booked", err)
	}
	if db.IsTransient(err) {
		return apperr.Wrap(apperr.Storage, "booking could not be committed, try again", err)
	}
	return apperr.Wrap(apperr.Storage, "booking transaction failed", err)
}
