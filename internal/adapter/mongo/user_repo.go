package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/immofind/ads-service/internal/entity"
	"github.com/immofind/ads-service/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollectionName = "users"

type UserMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(client *mongo.Client, dbName string) *UserMongoRepository {
	return &UserMongoRepository{
		db: client.Database(dbName),
	}
}

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"first_name"`
	LastName   string             `bson:"last_name"`
	Username   string             `bson:"username"`
	ProfilePic string             `bson:"profile_pic,omitempty"`
	Tel        string             `bson:"tel,omitempty"`
	Seen       []string           `bson:"seen"`
}

func toUserEntity(doc *userDocument) *entity.User {
	return &entity.User{
		ID:         doc.ID.Hex(),
		FirstName:  doc.FirstName,
		LastName:   doc.LastName,
		Username:   doc.Username,
		ProfilePic: doc.ProfilePic,
		Tel:        doc.Tel,
		Seen:       doc.Seen,
	}
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc userDocument
	err = r.db.Collection(usersCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) AddSeenAd(ctx context.Context, userID, adID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(usersCollectionName).UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$addToSet": bson.M{"seen": adID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add seen ad in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
