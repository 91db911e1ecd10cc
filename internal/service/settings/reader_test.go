package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/settings"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetDocument(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestReader_BookingSettings_MissingDocumentUsesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetDocument", ctx, domain.SettingsKeyBooking).Return(nil, settingsRepo.ErrSettingsNotFound)

	r := NewReader(repo, nil, time.Minute, nopLogger{})
	s, err := r.BookingSettings(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxBookingsPerSlot, s.MaxBookingsPerSlot)
	assert.False(t, s.TechnicianExclusive)
}

func TestReader_BookingSettings_Document(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	doc := []byte(`{"technicianExclusive":true,"maxBookingsPerSlot":3,"timeOverrides":[{"time":"18:00","count":5}]}`)
	repo.On("GetDocument", ctx, domain.SettingsKeyBooking).Return(doc, nil)

	r := NewReader(repo, nil, time.Minute, nopLogger{})
	s, err := r.BookingSettings(ctx)

	require.NoError(t, err)
	assert.True(t, s.TechnicianExclusive)
	assert.Equal(t, 3, s.CapacityFor("10:00"))
	assert.Equal(t, 5, s.CapacityFor("18:00"))
}

func TestReader_PointSettings_PartialDocumentKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetDocument", ctx, domain.SettingsKeyPoints).Return([]byte(`{"visitPoints":25}`), nil)

	r := NewReader(repo, nil, time.Minute, nopLogger{})
	s, err := r.PointSettings(ctx)

	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, int64(domain.DefaultSpendPerPoint), s.SpendPerPoint)
	assert.Equal(t, int64(25), s.VisitPoints)
}

func TestReader_NotificationSettings_FromCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	cache := new(MockCache)
	cache.On("Get", ctx, domain.SettingsKeyNotifications, mock.Anything).
		Run(func(args mock.Arguments) {
			dst := args.Get(2).(*json.RawMessage)
			*dst = json.RawMessage(`{"reviewRequest":false}`)
		}).
		Return(true, nil)

	r := NewReader(repo, cache, time.Minute, nopLogger{})
	s, err := r.NotificationSettings(ctx)

	require.NoError(t, err)
	assert.False(t, s.IsEnabled(domain.NotifyReviewRequest))
	assert.True(t, s.IsEnabled(domain.NotifyCustomerConfirmed))
	repo.AssertNotCalled(t, "GetDocument", mock.Anything, mock.Anything)
}

func TestReader_StoreErrorIsPersistence(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetDocument", ctx, domain.SettingsKeyPoints).Return(nil, errors.New("timeout"))

	r := NewReader(repo, nil, time.Minute, nopLogger{})
	_, err := r.PointSettings(ctx)

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestReader_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCache)
	cache.On("Delete", ctx, []string{domain.SettingsKeyBooking}).Return(nil)

	r := NewReader(new(MockRepository), cache, time.Minute, nopLogger{})
	require.NoError(t, r.Invalidate(ctx, domain.SettingsKeyBooking))
	cache.AssertExpectations(t)
}
