package mongo

import (
	"testing"

	"github.com/immofind/ads-service/internal/entity"
	"github.com/immofind/ads-service/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCompileSearchQuery_EmptyFilterKeepsBaseline(t *testing.T) {
	query := compileSearchQuery(repository.SearchFilter{})

	assert.Equal(t, bson.M{
		"published": entity.PublishedStatePublished,
		"enabled":   true,
	}, query)
}

func TestCompileSearchQuery_BaselineSurvivesEveryFilter(t *testing.T) {
	minPrice, maxPrice := 1000.0, 5000.0
	minSurface, maxSurface := 40.0, 120.0
	rooms := 3
	query := compileSearchQuery(repository.SearchFilter{
		Title:        "villa",
		Location:     "casablanca",
		PropertyType: "maison",
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
		MinSurface:   &minSurface,
		MaxSurface:   &maxSurface,
		Rooms:        &rooms,
	})

	assert.Equal(t, entity.PublishedStatePublished, query["published"])
	assert.Equal(t, true, query["enabled"])
}

func TestCompileSearchQuery_TextFiltersAreCaseInsensitiveSubstrings(t *testing.T) {
	query := compileSearchQuery(repository.SearchFilter{Title: "Villa", Location: "Rabat"})

	assert.Equal(t, bson.M{"$regex": "Villa", "$options": "i"}, query["title"])
	assert.Equal(t, bson.M{"$regex": "Rabat", "$options": "i"}, query["address"])
}

func TestCompileSearchQuery_RangeBoundsIntersect(t *testing.T) {
	minPrice, maxPrice := 1000.0, 5000.0
	query := compileSearchQuery(repository.SearchFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})

	// Both bounds land on the same field; supplying both narrows, never
	// overrides.
	assert.Equal(t, bson.M{"$gte": 1000.0, "$lte": 5000.0}, query["price"])
}

func TestCompileSearchQuery_LoneMinBound(t *testing.T) {
	minPrice := 1000.0
	query := compileSearchQuery(repository.SearchFilter{MinPrice: &minPrice})

	assert.Equal(t, bson.M{"$gte": 1000.0}, query["price"])
	assert.NotContains(t, query, "surface")
}

func TestCompileSearchQuery_ExactMatches(t *testing.T) {
	rooms := 4
	query := compileSearchQuery(repository.SearchFilter{PropertyType: "appartement", Rooms: &rooms})

	assert.Equal(t, "appartement", query["property_type"])
	assert.Equal(t, 4, query["rooms"])
}
