package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfshr/aur/internal/domain"
	"github.com/cfshr/aur/internal/storage"
	apperrors "github.com/cfshr/aur/pkg/errors"
)

func setup(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, "device-1", time.Hour), mr
}

func testCart() domain.Cart {
	return domain.Cart{Items: []domain.LineItem{
		{ID: "precious", Name: "PrecIOus", Artist: "Data Werkstadt", Price: 125, Quantity: 3, Image: "/images/precious.png"},
	}}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)

	require.NoError(t, s.Save(ctx, testCart()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testCart(), got)
}

func TestSave_KeyIsScopedToDevice(t *testing.T) {
	ctx := context.Background()
	s, mr := setup(t)

	require.NoError(t, s.Save(ctx, testCart()))

	assert.True(t, mr.Exists(storage.Key+":device-1"))
}

func TestSave_SetsTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := setup(t)

	require.NoError(t, s.Save(ctx, testCart()))

	assert.Equal(t, time.Hour, mr.TTL(storage.Key+":device-1"))
}

func TestLoad_ExpiredStateIsNotFound(t *testing.T) {
	ctx := context.Background()
	s, mr := setup(t)

	require.NoError(t, s.Save(ctx, testCart()))
	mr.FastForward(2 * time.Hour)

	_, err := s.Load(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestLoad_MissingKeyIsNotFound(t *testing.T) {
	s, _ := setup(t)

	_, err := s.Load(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestLoad_CorruptedValue(t *testing.T) {
	ctx := context.Background()
	s, mr := setup(t)

	require.NoError(t, mr.Set(storage.Key+":device-1", "{not json"))

	_, err := s.Load(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrCorrupted))
}

func TestDelete_RemovesState(t *testing.T) {
	ctx := context.Background()
	s, mr := setup(t)

	require.NoError(t, s.Save(ctx, testCart()))
	require.NoError(t, s.Delete(ctx))

	assert.False(t, mr.Exists(storage.Key+":device-1"))
}

func TestDelete_MissingKeyIsNoError(t *testing.T) {
	s, _ := setup(t)
	assert.NoError(t, s.Delete(context.Background()))
}
