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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adsCollectionName = "ads"

type AdMongoRepository struct {
	db *mongo.Database
}

func NewAdMongoRepository(client *mongo.Client, dbName string) *AdMongoRepository {
	return &AdMongoRepository{
		db: client.Database(dbName),
	}
}

type adDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Address      string             `bson:"address"`
	PropertyType string             `bson:"property_type"`
	Price        float64            `bson:"price"`
	Surface      float64            `bson:"surface"`
	Rooms        int                `bson:"rooms"`
	Published    string             `bson:"published"`
	Enabled      bool               `bson:"enabled"`
	Seen         []string           `bson:"seen"`
	CreatedBy    string             `bson:"created_by"`
	CreatedAt    primitive.DateTime `bson:"created_at"`
	UpdatedAt    primitive.DateTime `bson:"updated_at"`
}

func toAdEntity(doc *adDocument) *entity.Ad {
	return &entity.Ad{
		ID:           doc.ID.Hex(),
		Title:        doc.Title,
		Address:      doc.Address,
		PropertyType: doc.PropertyType,
		Price:        doc.Price,
		Surface:      doc.Surface,
		Rooms:        doc.Rooms,
		Published:    doc.Published,
		Enabled:      doc.Enabled,
		Seen:         doc.Seen,
		CreatedBy:    doc.CreatedBy,
		CreatedAt:    doc.CreatedAt.Time(),
		UpdatedAt:    doc.UpdatedAt.Time(),
	}
}

// visibleFilter is the baseline predicate every catalog query carries.
// Caller-supplied filters are ANDed on top and can never widen it.
func visibleFilter() bson.M {
	return bson.M{
		"published": entity.PublishedStatePublished,
		"enabled":   true,
	}
}

// compileSearchQuery turns a SearchFilter into a mongo predicate. Text
// fields become case-insensitive substring matches; min/max bounds on the
// same field intersect.
func compileSearchQuery(filter repository.SearchFilter) bson.M {
	query := visibleFilter()

	if filter.Title != "" {
		query["title"] = bson.M{"$regex": filter.Title, "$options": "i"}
	}
	if filter.Location != "" {
		query["address"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	surface := bson.M{}
	if filter.MinSurface != nil {
		surface["$gte"] = *filter.MinSurface
	}
	if filter.MaxSurface != nil {
		surface["$lte"] = *filter.MaxSurface
	}
	if len(surface) > 0 {
		query["surface"] = surface
	}

	if filter.Rooms != nil {
		query["rooms"] = *filter.Rooms
	}

	return query
}

func (r *AdMongoRepository) FindPage(ctx context.Context, offset, limit int64) ([]*entity.Ad, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	return r.find(ctx, visibleFilter(), findOptions)
}

func (r *AdMongoRepository) Search(ctx context.Context, filter repository.SearchFilter, limit int64) ([]*entity.Ad, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, compileSearchQuery(filter), findOptions)
}

func (r *AdMongoRepository) find(ctx context.Context, query bson.M, findOptions *options.FindOptions) ([]*entity.Ad, error) {
	cursor, err := r.db.Collection(adsCollectionName).Find(ctx, query, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find ads in mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []adDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode ads from mongo: %w", err)
	}

	ads := make([]*entity.Ad, len(docs))
	for i := range docs {
		ads[i] = toAdEntity(&docs[i])
	}
	return ads, nil
}

func (r *AdMongoRepository) CountVisible(ctx context.Context) (int64, error) {
	count, err := r.db.Collection(adsCollectionName).CountDocuments(ctx, visibleFilter())
	if err != nil {
		return 0, fmt.Errorf("failed to count ads in mongo: %w", err)
	}
	return count, nil
}

func (r *AdMongoRepository) GetByID(ctx context.Context, id string) (*entity.Ad, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc adDocument
	err = r.db.Collection(adsCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ad by id from mongo: %w", err)
	}
	return toAdEntity(&doc), nil
}

// AddSeenIP relies on $addToSet so that two concurrent first views from the
// same ip cannot produce a duplicate entry.
func (r *AdMongoRepository) AddSeenIP(ctx context.Context, adID, ip string) error {
	objID, err := primitive.ObjectIDFromHex(adID)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.db.Collection(adsCollectionName).UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$addToSet": bson.M{"seen": ip}},
	)
	if err != nil {
		return fmt.Errorf("failed to add seen ip in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
