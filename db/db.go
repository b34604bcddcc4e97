package db

import (
	"context"
	"errors"
	"time"

	"courtside/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var (
	Client               *mongo.Client
	UserCollection       *mongo.Collection
	FacilitiesCollection *mongo.Collection
	BookingsCollection   *mongo.Collection
	SlotClaimsCollection *mongo.Collection
)

// Init connects the long-lived Mongo client and binds the collection
// handles. Called once from main; everything else reads the package vars.
func Init(ctx context.Context, cfg *config.Config) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return err
	}

	Client = client
	database := client.Database(cfg.MongoDB)
	UserCollection = database.Collection("users")
	FacilitiesCollection = database.Collection("facilities")
	BookingsCollection = database.Collection("bookings")
	SlotClaimsCollection = database.Collection("slotclaims")

	return ensureIndexes(ctx)
}

func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "studentid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userid", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	_, err = FacilitiesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "facilityid", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = BookingsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "facilityid", Value: 1}, {Key: "date", Value: 1}, {Key: "starttime", Value: 1}}},
		{Keys: bson.D{{Key: "userid", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return err
	}

	// SlotClaims rely on the _id natural key for uniqueness; the bookingid
	// index serves claim cleanup on cancel/complete/sweep.
	_, err = SlotClaimsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bookingid", Value: 1}},
	})
	return err
}

// WithTransaction runs fn as a single atomic unit against the store:
// snapshot reads, majority-acknowledged commit, all-or-nothing. The
// session is always ended, success or failure.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	return session.WithTransaction(ctx, fn, txnOpts)
}

// IsTransient reports whether err is a transaction failure the caller may
// retry, as opposed to a real outcome like a duplicate key.
func IsTransient(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") ||
			ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
