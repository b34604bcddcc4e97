package facilities

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"courtside/db"
	"courtside/models"
	"courtside/rdx"
	"courtside/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listCacheKey = "facilities:all"

var validTypes = []string{models.TypeSnooker, models.TypeFootball, models.TypeBadminton}
var validStatuses = []string{models.FacilityActive, models.FacilityMaintenance}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func invalidateCache(ctx context.Context) {
	if err := rdx.RdxDel(ctx, listCacheKey); err != nil {
		log.Printf("facility cache invalidation failed: %v", err)
	}
}

// GetFacilities lists facilities, optionally filtered by type and status.
// The unfiltered listing is the hot path for the browse page, so it is
// served from a short-lived Redis cache.
func GetFacilities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	typ := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	unfiltered := typ == "" && status == ""
	if unfiltered {
		if cached, err := rdx.RdxGet(ctx, listCacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{}
	if typ != "" {
		filter["type"] = typ
	}
	if status != "" {
		filter["status"] = status
	}

	cur, err := db.FacilitiesCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	facilities := []models.Facility{}
	if err := cur.All(ctx, &facilities); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	payload, _ := json.Marshal(utils.M{"facilities": facilities})
	if unfiltered {
		if err := rdx.SetWithExpiry(ctx, listCacheKey, string(payload), time.Minute); err != nil {
			log.Printf("facility cache write failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func GetFacility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var facility models.Facility
	err := db.FacilitiesCollection.FindOne(ctx, bson.M{"facilityid": ps.ByName("id")}).Decode(&facility)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Facility not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"facility": facility})
}

// CreateFacility is admin-only (enforced by routing middleware).
func CreateFacility(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Location string `json:"location"`
		Capacity int    `json:"capacity"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Name == "" || body.Type == "" || body.Location == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, type, location, and capacity are required")
		return
	}
	if !contains(validTypes, body.Type) {
		utils.RespondWithError(w, http.StatusBadRequest, "Type must be one of: Snooker, Football, Badminton")
		return
	}
	if body.Capacity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Capacity must be a positive number")
		return
	}
	if body.Status == "" {
		body.Status = models.FacilityActive
	}
	if !contains(validStatuses, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Status must be one of: Active, Maintenance")
		return
	}

	facility := models.Facility{
		FacilityID: "f" + utils.GenerateID(12),
		Name:       body.Name,
		Type:       body.Type,
		Location:   body.Location,
		Capacity:   body.Capacity,
		Status:     body.Status,
		CreatedAt:  time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.FacilitiesCollection.InsertOne(ctx, facility); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db insert failed")
		return
	}
	invalidateCache(ctx)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"facility": facility})
}

func UpdateFacility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Location string `json:"location"`
		Capacity *int   `json:"capacity"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updates := bson.M{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Type != "" {
		if !contains(validTypes, body.Type) {
			utils.RespondWithError(w, http.StatusBadRequest, "Type must be one of: Snooker, Football, Badminton")
			return
		}
		updates["type"] = body.Type
	}
	if body.Location != "" {
		updates["location"] = body.Location
	}
	if body.Capacity != nil {
		if *body.Capacity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Capacity must be a positive number")
			return
		}
		updates["capacity"] = *body.Capacity
	}
	if body.Status != "" {
		if !contains(validStatuses, body.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Status must be one of: Active, Maintenance")
			return
		}
		updates["status"] = body.Status
	}
	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var facility models.Facility
	err := db.FacilitiesCollection.FindOneAndUpdate(ctx,
		bson.M{"facilityid": ps.ByName("id")},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&facility)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Facility not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	invalidateCache(ctx)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"facility": facility})
}

func DeleteFacility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.FacilitiesCollection.DeleteOne(ctx, bson.M{"facilityid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Facility not found")
		return
	}
	invalidateCache(ctx)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Facility deleted"})
}
