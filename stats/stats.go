package stats

import (
	"context"
	"log"
	"net/http"
	"time"

	"courtside/booking"
	"courtside/db"
	"courtside/models"
	"courtside/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type labelCount struct {
	Label string `bson:"_id" json:"label"`
	Count int    `bson:"count" json:"count"`
}

func groupCount(ctx context.Context, pipeline bson.A) ([]labelCount, error) {
	cur, err := db.BookingsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []labelCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStats aggregates the admin dashboard numbers. The expiry sweeper runs
// first so completed counts are current as of this read.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := booking.SweepExpired(ctx); err != nil {
		log.Printf("expiry sweep failed: %v", err)
	}

	totalBookings, err := db.BookingsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	confirmedCount, _ := db.BookingsCollection.CountDocuments(ctx, bson.M{"status": models.StatusConfirmed})
	cancelledCount, _ := db.BookingsCollection.CountDocuments(ctx, bson.M{"status": models.StatusCancelled})
	completedCount, _ := db.BookingsCollection.CountDocuments(ctx, bson.M{"status": models.StatusCompleted})
	totalUsers, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleStudent})
	totalFacilities, _ := db.FacilitiesCollection.CountDocuments(ctx, bson.M{})
	activeFacilities, _ := db.FacilitiesCollection.CountDocuments(ctx, bson.M{"status": models.FacilityActive})

	bookingsByType, err := groupCount(ctx, bson.A{
		bson.M{"$lookup": bson.M{
			"from":         "facilities",
			"localField":   "facilityid",
			"foreignField": "facilityid",
			"as":           "facility",
		}},
		bson.M{"$unwind": "$facility"},
		bson.M{"$group": bson.M{"_id": "$facility.type", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	topFacilities, err := groupCount(ctx, bson.A{
		bson.M{"$lookup": bson.M{
			"from":         "facilities",
			"localField":   "facilityid",
			"foreignField": "facilityid",
			"as":           "facility",
		}},
		bson.M{"$unwind": "$facility"},
		bson.M{"$group": bson.M{"_id": "$facility.name", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
		bson.M{"$limit": 5},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	peakHours, err := groupCount(ctx, bson.A{
		bson.M{"$match": bson.M{"status": models.StatusConfirmed}},
		bson.M{"$group": bson.M{"_id": "$starttime", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	dailyBookings, err := groupCount(ctx, bson.A{
		bson.M{"$group": bson.M{"_id": "$date", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"_id": -1}},
		bson.M{"$limit": 14},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	// oldest first for charting
	for i, j := 0, len(dailyBookings)-1; i < j; i, j = i+1, j-1 {
		dailyBookings[i], dailyBookings[j] = dailyBookings[j], dailyBookings[i]
	}

	recentCur, err := db.BookingsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}}).SetLimit(10))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	recentBookings := []models.Booking{}
	if err := recentCur.All(ctx, &recentBookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	var cancellationRate, completionRate, avgBookingsPerUser float64
	if totalBookings > 0 {
		cancellationRate = float64(cancelledCount) / float64(totalBookings) * 100
		completionRate = float64(completedCount) / float64(totalBookings) * 100
	}
	if totalUsers > 0 {
		avgBookingsPerUser = float64(totalBookings) / float64(totalUsers)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"overview": utils.M{
			"totalBookings":      totalBookings,
			"confirmedCount":     confirmedCount,
			"cancelledCount":     cancelledCount,
			"completedCount":     completedCount,
			"totalUsers":         totalUsers,
			"totalFacilities":    totalFacilities,
			"activeFacilities":   activeFacilities,
			"cancellationRate":   cancellationRate,
			"completionRate":     completionRate,
			"avgBookingsPerUser": avgBookingsPerUser,
		},
		"bookingsByType": bookingsByType,
		"topFacilities":  topFacilities,
		"peakHours":      peakHours,
		"dailyBookings":  dailyBookings,
		"recentBookings": recentBookings,
	})
}
