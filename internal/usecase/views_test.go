package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/immofind/ads-service/internal/entity"
	"github.com/immofind/ads-service/internal/port/repository"
	"github.com/immofind/ads-service/internal/port/trending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAdRepository struct{ mock.Mock }

func (m *MockAdRepository) FindPage(ctx context.Context, offset, limit int64) ([]*entity.Ad, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Ad), args.Error(1)
}
func (m *MockAdRepository) Search(ctx context.Context, filter repository.SearchFilter, limit int64) ([]*entity.Ad, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Ad), args.Error(1)
}
func (m *MockAdRepository) CountVisible(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAdRepository) GetByID(ctx context.Context, id string) (*entity.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ad), args.Error(1)
}
func (m *MockAdRepository) AddSeenIP(ctx context.Context, adID, ip string) error {
	args := m.Called(ctx, adID, ip)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) AddSeenAd(ctx context.Context, userID, adID string) error {
	args := m.Called(ctx, userID, adID)
	return args.Error(0)
}

type MockViewEventRepository struct{ mock.Mock }

func (m *MockViewEventRepository) Create(ctx context.Context, event *entity.ViewEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

type MockTrendingRecorder struct{ mock.Mock }

func (m *MockTrendingRecorder) RecordView(ctx context.Context, adID string) error {
	args := m.Called(ctx, adID)
	return args.Error(0)
}
func (m *MockTrendingRecorder) TopAds(ctx context.Context, limit int64) ([]trending.AdScore, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trending.AdScore), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishAdViewed(ctx context.Context, event *entity.ViewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newViewsFixture() (*ViewsUseCase, *MockAdRepository, *MockUserRepository, *MockViewEventRepository, *MockTrendingRecorder, *MockEventPublisher) {
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	eventRepo := new(MockViewEventRepository)
	trendingRec := new(MockTrendingRecorder)
	publisher := new(MockEventPublisher)
	uc := NewViewsUseCase(adRepo, userRepo, eventRepo, trendingRec, publisher, zap.NewNop())
	return uc, adRepo, userRepo, eventRepo, trendingRec, publisher
}

func visibleAd(id string) *entity.Ad {
	return &entity.Ad{
		ID:        id,
		Title:     "Appartement T3 centre",
		Published: entity.PublishedStatePublished,
		Enabled:   true,
		CreatedBy: "user-owner",
		Seen:      []string{},
	}
}

func TestGetAd_AnonymousNoIP(t *testing.T) {
	uc, adRepo, userRepo, eventRepo, trendingRec, publisher := newViewsFixture()
	ad := visibleAd("ad-1")

	adRepo.On("GetByID", mock.Anything, "ad-1").Return(ad, nil)
	eventRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.ViewEvent) bool {
		return e.AdID == "ad-1" && e.IP == ""
	})).Return("event-1", nil)
	trendingRec.On("RecordView", mock.Anything, "ad-1").Return(nil)
	publisher.On("PublishAdViewed", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, "user-owner").Return(nil, repository.ErrNotFound)

	got, err := uc.GetAd(context.Background(), "ad-1", Viewer{})

	assert.NoError(t, err)
	assert.Equal(t, "ad-1", got.ID)
	assert.Empty(t, got.Seen)
	// Anonymous with no IP: the event is still written, but neither seen
	// set is touched.
	userRepo.AssertNotCalled(t, "AddSeenAd", mock.Anything, mock.Anything, mock.Anything)
	adRepo.AssertNotCalled(t, "AddSeenIP", mock.Anything, mock.Anything, mock.Anything)
	eventRepo.AssertExpectations(t)
}

func TestGetAd_NotFound(t *testing.T) {
	uc, adRepo, userRepo, eventRepo, _, _ := newViewsFixture()

	adRepo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	got, err := uc.GetAd(context.Background(), "missing", Viewer{UserID: "user-1", IP: "10.0.0.1"})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrAdNotFound)
	userRepo.AssertNotCalled(t, "AddSeenAd", mock.Anything, mock.Anything, mock.Anything)
	adRepo.AssertNotCalled(t, "AddSeenIP", mock.Anything, mock.Anything, mock.Anything)
	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetAd_AuthenticatedWithIP(t *testing.T) {
	uc, adRepo, userRepo, eventRepo, trendingRec, publisher := newViewsFixture()
	ad := visibleAd("ad-2")
	owner := &entity.User{ID: "user-owner", FirstName: "Yassine", LastName: "B", Username: "yassine", Tel: "0601020304"}

	adRepo.On("GetByID", mock.Anything, "ad-2").Return(ad, nil)
	userRepo.On("AddSeenAd", mock.Anything, "user-1", "ad-2").Return(nil)
	adRepo.On("AddSeenIP", mock.Anything, "ad-2", "10.0.0.9").Return(nil)
	eventRepo.On("Create", mock.Anything, mock.Anything).Return("event-2", nil)
	trendingRec.On("RecordView", mock.Anything, "ad-2").Return(nil)
	publisher.On("PublishAdViewed", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, "user-owner").Return(owner, nil)

	got, err := uc.GetAd(context.Background(), "ad-2", Viewer{UserID: "user-1", IP: "10.0.0.9"})

	assert.NoError(t, err)
	assert.Contains(t, got.Seen, "10.0.0.9")
	if assert.NotNil(t, got.Owner) {
		assert.Equal(t, "Yassine", got.Owner.FirstName)
		assert.Equal(t, "yassine", got.Owner.Username)
	}
	adRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestGetAd_RepeatViewKeepsSeenDeduplicated(t *testing.T) {
	uc, adRepo, userRepo, eventRepo, trendingRec, publisher := newViewsFixture()
	ad := visibleAd("ad-3")
	ad.Seen = []string{"10.0.0.9"}

	adRepo.On("GetByID", mock.Anything, "ad-3").Return(ad, nil)
	adRepo.On("AddSeenIP", mock.Anything, "ad-3", "10.0.0.9").Return(nil)
	eventRepo.On("Create", mock.Anything, mock.Anything).Return("event-3", nil)
	trendingRec.On("RecordView", mock.Anything, "ad-3").Return(nil)
	publisher.On("PublishAdViewed", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, "user-owner").Return(nil, repository.ErrNotFound)

	got, err := uc.GetAd(context.Background(), "ad-3", Viewer{IP: "10.0.0.9"})

	assert.NoError(t, err)
	// The ip was already in the set; the snapshot must not grow.
	assert.Equal(t, []string{"10.0.0.9"}, got.Seen)
	// The raw event log still gets an entry for every retrieval.
	eventRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestGetAd_SideEffectFailuresDoNotFailRead(t *testing.T) {
	uc, adRepo, userRepo, eventRepo, trendingRec, publisher := newViewsFixture()
	ad := visibleAd("ad-4")
	storeDown := errors.New("store down")

	adRepo.On("GetByID", mock.Anything, "ad-4").Return(ad, nil)
	userRepo.On("AddSeenAd", mock.Anything, "user-1", "ad-4").Return(storeDown)
	adRepo.On("AddSeenIP", mock.Anything, "ad-4", "10.0.0.1").Return(storeDown)
	eventRepo.On("Create", mock.Anything, mock.Anything).Return("", storeDown)
	trendingRec.On("RecordView", mock.Anything, "ad-4").Return(storeDown)
	publisher.On("PublishAdViewed", mock.Anything, mock.Anything).Return(storeDown)
	userRepo.On("GetByID", mock.Anything, "user-owner").Return(nil, storeDown)

	got, err := uc.GetAd(context.Background(), "ad-4", Viewer{UserID: "user-1", IP: "10.0.0.1"})

	assert.NoError(t, err)
	assert.Equal(t, "ad-4", got.ID)
	assert.Nil(t, got.Owner)
	// Every best-effort step was still attempted.
	userRepo.AssertCalled(t, "AddSeenAd", mock.Anything, "user-1", "ad-4")
	adRepo.AssertCalled(t, "AddSeenIP", mock.Anything, "ad-4", "10.0.0.1")
	eventRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHistory_SkipsRemovedAds(t *testing.T) {
	uc, adRepo, userRepo, _, _, _ := newViewsFixture()
	user := &entity.User{ID: "user-1", Seen: []string{"ad-old", "ad-gone", "ad-new"}}

	userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	adRepo.On("GetByID", mock.Anything, "ad-new").Return(visibleAd("ad-new"), nil)
	adRepo.On("GetByID", mock.Anything, "ad-gone").Return(nil, repository.ErrNotFound)
	adRepo.On("GetByID", mock.Anything, "ad-old").Return(visibleAd("ad-old"), nil)

	ads, err := uc.History(context.Background(), "user-1")

	assert.NoError(t, err)
	if assert.Len(t, ads, 2) {
		// Most recently seen first.
		assert.Equal(t, "ad-new", ads[0].ID)
		assert.Equal(t, "ad-old", ads[1].ID)
	}
}

func TestHistory_UnknownUser(t *testing.T) {
	uc, _, userRepo, _, _, _ := newViewsFixture()

	userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	ads, err := uc.History(context.Background(), "ghost")

	assert.Nil(t, ads)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrendingAds(t *testing.T) {
	uc, _, _, _, trendingRec, _ := newViewsFixture()
	scores := []trending.AdScore{{AdID: "ad-1", Views: 42}, {AdID: "ad-2", Views: 7}}

	trendingRec.On("TopAds", mock.Anything, int64(2)).Return(scores, nil)

	got, err := uc.TrendingAds(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, scores, got)
}
