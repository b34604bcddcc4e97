package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"courtside/apperr"
	"courtside/db"
	"courtside/models"
	"courtside/mq"
	"courtside/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sweep runs the expiry pass before a read. A sweep failure is logged, not
// fatal: serving a slightly stale status beats failing the read.
func sweep(ctx context.Context) {
	if err := SweepExpired(ctx); err != nil {
		log.Printf("expiry sweep failed: %v", err)
	}
}

// GetAvailability returns the free and full slot grids for one facility on
// one date. Advisory only: the availability read is a snapshot outside any
// transaction, and a slot shown free can be taken by the time the caller
// posts. Admission re-checks transactionally.
func GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	facilityID := r.URL.Query().Get("facilityId")
	date := r.URL.Query().Get("date")
	if facilityID == "" || date == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "facilityId and date are required")
		return
	}
	if !dateRe.MatchString(date) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date format (expected YYYY-MM-DD)")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	sweep(ctx)

	cur, err := db.BookingsCollection.Find(ctx, bson.M{
		"facilityid": facilityID,
		"date":       date,
		"status":     models.StatusConfirmed,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	var confirmed []models.Booking
	if err := cur.All(ctx, &confirmed); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	allSlots := SlotGrid()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"slots":    AvailableSlots(allSlots, confirmed),
		"allSlots": allSlots,
	})
}

// CreateBooking admits a new booking for the authenticated user.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		FacilityID string `json:"facilityId"`
		Date       string `json:"date"`
		StartTime  string `json:"startTime"`
		EndTime    string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	booked, err := Admit(ctx, userID, body.FacilityID, body.Date, body.StartTime, body.EndTime)
	if err != nil {
		if apperr.KindOf(err) == apperr.Storage {
			log.Printf("admission failed: %v", err)
		}
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, mq.BookingCreated, *booked)
	broadcastUpdate(booked.FacilityID, booked.Date)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": booked})
}

// ListBookings returns the caller's bookings; admins see everyone's unless
// they ask for ?mine=true. The sweeper runs first.
func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	sweep(ctx)

	filter := bson.M{"userid": userID}
	if role == models.RoleAdmin && r.URL.Query().Get("mine") != "true" {
		filter = bson.M{}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "starttime", Value: -1}})
	cur, err := db.BookingsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

// loadOwned fetches a booking and enforces the owner-or-admin rule shared
// by the single-booking endpoints.
func loadOwned(ctx context.Context, r *http.Request, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Booking not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "booking lookup failed", err)
	}
	if utils.GetRoleFromRequest(r) != models.RoleAdmin && b.UserID != utils.GetUserIDFromRequest(r) {
		return nil, apperr.New(apperr.Forbidden, "Forbidden")
	}
	return &b, nil
}

func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	sweep(ctx)

	b, err := loadOwned(ctx, r, ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": b})
}

// UpdateBookingStatus drives the state machine: Confirmed may become
// Cancelled or Completed, nothing else moves.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := Transition(ctx, ps.ByName("id"),
		utils.GetUserIDFromRequest(r), utils.GetRoleFromRequest(r), body.Status)
	if err != nil {
		if apperr.KindOf(err) == apperr.Storage {
			log.Printf("transition failed: %v", err)
		}
		utils.RespondWithAppError(w, err)
		return
	}

	if updated.Status == models.StatusCancelled {
		mq.Emit(ctx, mq.BookingCancelled, *updated)
	}
	broadcastUpdate(updated.FacilityID, updated.Date)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": updated})
}

// DeleteBooking removes the record outright (administrative deletion, not a
// lifecycle transition). Claims go with it so the hours free up.
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	b, err := loadOwned(ctx, r, ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	_, err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, delErr := db.BookingsCollection.DeleteOne(sc, bson.M{"bookingid": b.BookingID}); delErr != nil {
			return nil, delErr
		}
		_, delErr := db.SlotClaimsCollection.DeleteMany(sc, bson.M{"bookingid": b.BookingID})
		return nil, delErr
	})
	if err != nil {
		log.Printf("booking delete failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	broadcastUpdate(b.FacilityID, b.Date)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Booking deleted"})
}
