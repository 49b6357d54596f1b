package mongo

import (
	"context"
	"fmt"

	"github.com/immofind/ads-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const viewEventsCollectionName = "view_events"

type ViewEventMongoRepository struct {
	db *mongo.Database
}

func NewViewEventMongoRepository(client *mongo.Client, dbName string) *ViewEventMongoRepository {
	return &ViewEventMongoRepository{
		db: client.Database(dbName),
	}
}

type viewEventDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AdID      string             `bson:"ad_id"`
	IP        string             `bson:"ip"`
	CreatedAt primitive.DateTime `bson:"created_at"`
}

func (r *ViewEventMongoRepository) Create(ctx context.Context, event *entity.ViewEvent) (string, error) {
	doc := viewEventDocument{
		AdID:      event.AdID,
		IP:        event.IP,
		CreatedAt: primitive.NewDateTimeFromTime(event.CreatedAt),
	}

	res, err := r.db.Collection(viewEventsCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create view event in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}
