package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context) (*domain.BusinessConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessConfig), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessConfig), args.Error(1)
}

func TestRepository_Get_Hit(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	store := new(MockStore)

	cfg := domain.DefaultBusinessConfig()
	cfg.SlotDuration = 45
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	client.On("Get", ctx, defaultKey).Return(redis.NewStringResult(string(data), nil))

	repo := NewRepository(store, client, time.Minute, logger.NewDiscard())
	got, err := repo.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, 45, got.SlotDuration)
	store.AssertNotCalled(t, "Get", mock.Anything)
}

func TestRepository_Get_MissLoadsAndFills(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	store := new(MockStore)
	cfg := domain.DefaultBusinessConfig()

	client.On("Get", ctx, defaultKey).Return(redis.NewStringResult("", redis.Nil))
	store.On("Get", ctx).Return(&cfg, nil)
	client.On("Set", ctx, defaultKey, mock.Anything, time.Minute).Return(redis.NewStatusResult("OK", nil))

	repo := NewRepository(store, client, time.Minute, logger.NewDiscard())
	got, err := repo.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, cfg.OpenTime, got.OpenTime)
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRepository_Get_RedisDownFallsBack(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	store := new(MockStore)
	cfg := domain.DefaultBusinessConfig()

	client.On("Get", ctx, defaultKey).Return(redis.NewStringResult("", errors.New("connection refused")))
	store.On("Get", ctx).Return(&cfg, nil)
	client.On("Set", ctx, defaultKey, mock.Anything, time.Minute).Return(redis.NewStatusResult("", errors.New("connection refused")))

	repo := NewRepository(store, client, time.Minute, logger.NewDiscard())
	got, err := repo.Get(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestRepository_Save_Invalidates(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	store := new(MockStore)
	cfg := domain.DefaultBusinessConfig()

	store.On("Save", ctx, &cfg).Return(&cfg, nil)
	client.On("Del", ctx, []string{defaultKey}).Return(redis.NewIntResult(1, nil))

	repo := NewRepository(store, client, time.Minute, logger.NewDiscard())
	_, err := repo.Save(ctx, &cfg)

	require.NoError(t, err)
	client.AssertExpectations(t)
}
