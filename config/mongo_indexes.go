package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// gigs indexes
	gigs := db.Collection("gigs")
	_, err := gigs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// 1) Text index backing relevance-sorted search
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "category", Value: "text"},
				{Key: "company", Value: "text"},
				{Key: "city", Value: "text"},
			},
			Options: options.Index().SetName("gig_text_search"),
		},
		// 2) Owner listing, newest first
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_owner_created"),
		},
	})
	if err != nil {
		return err
	}

	// applications indexes
	applications := db.Collection("applications")
	_, err = applications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Per-gig listing and the counts aggregation
		{
			Keys:    bson.D{{Key: "gig", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("by_gig_status"),
		},
		// Seeker listing, newest applied first
		{
			Keys:    bson.D{{Key: "seeker", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("by_seeker_applied"),
		},
	})
	return err
}
