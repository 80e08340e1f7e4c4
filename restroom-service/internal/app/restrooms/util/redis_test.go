package util

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
)

func newTestRedisClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

// ===================== RedisClient Tests =====================

func TestRedisClient_SetAndGetRestrooms(t *testing.T) {
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	hours := "08:00-18:00"
	restrooms := []entity.Restroom{
		{
			ID:         1,
			Name:       "Bryant Park Restroom",
			Latitude:   40.7536,
			Longitude:  -73.9832,
			Hours:      &hours,
			Amenities:  []string{"ada_accessible", "changing_table"},
			AvgRating:  4.5,
			VisitCount: 120,
		},
		{
			ID:        2,
			Name:      "Grand Central North",
			Latitude:  40.7527,
			Longitude: -73.9772,
		},
	}

	err := client.SetRestrooms(ctx, restrooms, time.Minute)
	require.NoError(t, err)

	got, err := client.GetRestrooms(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, restrooms[0].Name, got[0].Name)
	assert.Equal(t, restrooms[0].Amenities, got[0].Amenities)
	assert.Equal(t, restrooms[0].AvgRating, got[0].AvgRating)
	require.NotNil(t, got[0].Hours)
	assert.Equal(t, hours, *got[0].Hours)
	assert.Nil(t, got[1].Hours)
}

func TestRedisClient_GetRestrooms_CacheMiss(t *testing.T) {
	client, _ := newTestRedisClient(t)

	got, err := client.GetRestrooms(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_DeleteRestrooms(t *testing.T) {
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	err := client.SetRestrooms(ctx, []entity.Restroom{{ID: 1, Name: "Test"}}, time.Minute)
	require.NoError(t, err)

	err = client.DeleteRestrooms(ctx)
	require.NoError(t, err)

	got, err := client.GetRestrooms(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_SetRestrooms_RespectsTTL(t *testing.T) {
	client, mr := newTestRedisClient(t)
	ctx := context.Background()

	err := client.SetRestrooms(ctx, []entity.Restroom{{ID: 1, Name: "Test"}}, time.Minute)
	require.NoError(t, err)

	// Промотка времени за пределы TTL
	mr.FastForward(2 * time.Minute)

	got, err := client.GetRestrooms(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
