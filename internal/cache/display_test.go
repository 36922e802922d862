package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/realtime-service/internal/cache"
	"github.com/skillswap/realtime-service/internal/models"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) UserDisplay(ctx context.Context, id string) (models.UserDisplay, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UserDisplay), args.Error(1)
}

// An unreachable Redis must be invisible to callers: every lookup falls
// through to the source.
func TestDisplayCacheFallsThroughWhenRedisDown(t *testing.T) {
	cli := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1", // nothing listens here
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = cli.Close() })

	src := new(MockSource)
	want := models.UserDisplay{ID: primitive.NewObjectID(), Name: "Alice", Avatar: "a.png"}
	src.On("UserDisplay", mock.Anything, "u1").Return(want, nil)

	c := cache.NewDisplayCache(cli, src, time.Minute)
	got, err := c.UserDisplay(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	src.AssertNumberOfCalls(t, "UserDisplay", 1)
}

func TestDisplayCachePropagatesSourceError(t *testing.T) {
	cli := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = cli.Close() })

	src := new(MockSource)
	src.On("UserDisplay", mock.Anything, "u1").Return(models.UserDisplay{}, assert.AnError)

	c := cache.NewDisplayCache(cli, src, time.Minute)
	_, err := c.UserDisplay(context.Background(), "u1")
	assert.Error(t, err)
}
