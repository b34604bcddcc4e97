package booking

import (
	"context"
	"errors"
	"fmt"

	"courtside/apperr"
	"courtside/db"
	"courtside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Legal status transitions. Cancelled and Completed are terminal.
var allowedTransitions = map[string][]string{
	models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted},
	models.StatusCancelled: {},
	models.StatusCompleted: {},
}

func validStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is a legal move. Self
// transitions are illegal like every other move out of the map.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves one booking to a new status on behalf of requester.
// Only the owner or an admin may transition a booking; an ownership
// mismatch is Forbidden, a state-machine violation is IllegalTransition,
// and the two never blur. The update itself is guarded by the status the
// caller saw, so a concurrent transition cannot be overwritten.
func Transition(ctx context.Context, bookingID, requesterID, role, to string) (*models.Booking, error) {
	if !validStatus(to) {
		return nil, apperr.New(apperr.Validation,
			"Status must be one of: Confirmed, Cancelled, Completed")
	}

	var current models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Booking not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "booking lookup failed", err)
	}

	if role != models.RoleAdmin && current.UserID != requesterID {
		return nil, apperr.New(apperr.Forbidden, "Forbidden")
	}

	if !CanTransition(current.Status, to) {
		return nil, apperr.New(apperr.IllegalTransition,
			fmt.Sprintf("Cannot change status from %s to %s", current.Status, to))
	}

	var updated models.Booking
	_, err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res := db.BookingsCollection.FindOneAndUpdate(sc,
			bson.M{"bookingid": bookingID, "status": current.Status},
			bson.M{"$set": bson.M{"status": to}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)
		if decErr := res.Decode(&updated); decErr != nil {
			if decErr == mongo.ErrNoDocuments {
				// Someone else moved the booking between our read and this
				// update. The guard filter kept us from clobbering it.
				return nil, apperr.New(apperr.Conflict, "Booking status changed, retry")
			}
			return nil, decErr
		}

		// Leaving Confirmed releases the booked hours.
		_, delErr := db.SlotClaimsCollection.DeleteMany(sc, bson.M{"bookingid": bookingID})
		return nil, delErr
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Wrap(apperr.Storage, "status update failed", err)
	}

	return &updated, nil
}
