package httpserver

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchFilter_AllParams(t *testing.T) {
	q := url.Values{}
	q.Set("Titre", "villa")
	q.Set("Location", "rabat")
	q.Set("TypeBien", "maison")
	q.Set("MinPrix", "1000")
	q.Set("MaxPrix", "5000")
	q.Set("MinSurface", "40")
	q.Set("MaxSurface", "120")
	q.Set("Pcs", "3")

	filter := parseSearchFilter(q)

	assert.Equal(t, "villa", filter.Title)
	assert.Equal(t, "rabat", filter.Location)
	assert.Equal(t, "maison", filter.PropertyType)
	if assert.NotNil(t, filter.MinPrice) {
		assert.Equal(t, 1000.0, *filter.MinPrice)
	}
	if assert.NotNil(t, filter.MaxPrice) {
		assert.Equal(t, 5000.0, *filter.MaxPrice)
	}
	if assert.NotNil(t, filter.Rooms) {
		assert.Equal(t, 3, *filter.Rooms)
	}
}

func TestParseSearchFilter_MalformedNumericsAreDropped(t *testing.T) {
	q := url.Values{}
	q.Set("MinPrix", "abc")
	q.Set("MaxPrix", "12x")
	q.Set("Pcs", "three")

	filter := parseSearchFilter(q)

	// Malformed numbers behave exactly like absent parameters; the request
	// itself is never rejected.
	assert.Nil(t, filter.MinPrice)
	assert.Nil(t, filter.MaxPrice)
	assert.Nil(t, filter.Rooms)
}

func TestParseSearchFilter_Empty(t *testing.T) {
	filter := parseSearchFilter(url.Values{})

	assert.Empty(t, filter.Title)
	assert.Nil(t, filter.MinPrice)
	assert.Nil(t, filter.MaxSurface)
	assert.Nil(t, filter.Rooms)
}

func TestParseOffset(t *testing.T) {
	assert.Equal(t, int64(0), parseOffset(""))
	assert.Equal(t, int64(0), parseOffset("abc"))
	assert.Equal(t, int64(0), parseOffset("-4"))
	assert.Equal(t, int64(32), parseOffset("32"))
}

func TestClientIP_ForwardedForWins(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/ads/1", nil)
	r.RemoteAddr = "192.168.1.5:4312"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", clientIP(r))
}

func TestClientIP_FallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/ads/1", nil)
	r.RemoteAddr = "192.168.1.5:4312"

	assert.Equal(t, "192.168.1.5", clientIP(r))
}
