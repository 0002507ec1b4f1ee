package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapsUnderlying(t *testing.T) {
	underlying := errors.New("boom")
	err := New(underlying, http.StatusBadGateway, RedisErrorMessage)

	assert.Equal(t, "redis operation failed: boom", err.Error())
	assert.True(t, errors.Is(err, underlying))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("load session: %w", err), &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestAppErrorWithoutUnderlying(t *testing.T) {
	err := New(nil, http.StatusInternalServerError, SystemErrorMessage)
	assert.Equal(t, SystemErrorMessage, err.Error())
}

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	missing := WrapRedis(redis.Nil)
	require.NotNil(t, missing)
	assert.Equal(t, http.StatusNotFound, missing.Status)
	assert.Equal(t, RedisNotFoundMessage, missing.Message)
	assert.True(t, errors.Is(missing, redis.Nil))

	failed := WrapRedis(errors.New("connection refused"))
	require.NotNil(t, failed)
	assert.Equal(t, http.StatusBadGateway, failed.Status)
	assert.Equal(t, RedisErrorMessage, failed.Message)
}
