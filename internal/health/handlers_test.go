package health

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"onlyfounders-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping() error { return f.err }

func setupHealthTest(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestHealthJSON(t *testing.T) {
	rdb, mr := setupHealthTest(t)
	require.NoError(t, mr.Set(middleware.KeyReqTotal, "10"))
	require.NoError(t, mr.Set(middleware.KeyReqErrors, "2"))

	h := &Handlers{Rdb: rdb, DB: fakePinger{}}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result CollectResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
}

func TestHealthJSON_DegradedOnDBError(t *testing.T) {
	rdb, _ := setupHealthTest(t)

	h := &Handlers{Rdb: rdb, DB: fakePinger{err: errors.New("down")}}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)

	var result CollectResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestHealthReset(t *testing.T) {
	rdb, mr := setupHealthTest(t)
	require.NoError(t, mr.Set(middleware.KeyReqTotal, "10"))

	h := &Handlers{Rdb: rdb, HealthAdminKey: "secret"}
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	assert.True(t, mr.Exists(middleware.KeyReqTotal))

	resp, err = app.Test(httptest.NewRequest("GET", "/health/reset?key=secret", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.False(t, mr.Exists(middleware.KeyReqTotal))
}

func TestHealthReset_NoKeyConfigured(t *testing.T) {
	rdb, _ := setupHealthTest(t)

	h := &Handlers{Rdb: rdb}
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
