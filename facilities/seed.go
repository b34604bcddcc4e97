package facilities

import (
	"context"
	"time"

	"courtside/db"
	"courtside/models"
	"courtside/utils"

	"go.mongodb.org/mongo-driver/bson"
)

var seedData = []models.Facility{
	{Name: "Snooker Table 1", Type: models.TypeSnooker, Location: "Sports Complex - Room A", Capacity: 2},
	{Name: "Snooker Table 2", Type: models.TypeSnooker, Location: "Sports Complex - Room A", Capacity: 2},
	{Name: "Football Field 1", Type: models.TypeFootball, Location: "Outdoor Field - North", Capacity: 22},
	{Name: "Football Field 2", Type: models.TypeFootball, Location: "Outdoor Field - South", Capacity: 22},
	{Name: "Badminton Court 1", Type: models.TypeBadminton, Location: "Indoor Hall - Court 1", Capacity: 4},
	{Name: "Badminton Court 2", Type: models.TypeBadminton, Location: "Indoor Hall - Court 2", Capacity: 4},
	{Name: "Badminton Court 3", Type: models.TypeBadminton, Location: "Indoor Hall - Court 3", Capacity: 4},
}

// Seed inserts the default campus facilities, skipping any name that
// already exists. Safe to run on every startup.
func Seed(ctx context.Context) (created int, err error) {
	for _, data := range seedData {
		findErr := db.FacilitiesCollection.FindOne(ctx, bson.M{"name": data.Name}).Err()
		if findErr == nil {
			continue
		}

		data.FacilityID = "f" + utils.GenerateID(12)
		data.Status = models.FacilityActive
		data.CreatedAt = time.Now().Unix()
		if _, insErr := db.FacilitiesCollection.InsertOne(ctx, data); insErr != nil {
			return created, insErr
		}
		created++
	}
	return created, nil
}
