package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/atlas/pkg/health"
	"github.com/artem13815/atlas/pkg/repository/memory"
	"github.com/artem13815/atlas/pkg/status"
)

type failingStatusRepo struct{}

func (failingStatusRepo) Create(context.Context, status.Check) error { return errors.New("db down") }
func (failingStatusRepo) List(context.Context, int, int) ([]status.Check, error) {
	return nil, errors.New("db down")
}

func newStatusApp(repo status.Repository) *fiber.App {
	h := NewStatusHandler(status.NewService(repo))
	app := fiber.New()
	app.Get("/api/", h.Root)
	app.Post("/api/status", h.Create)
	app.Get("/api/status", h.List)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestStatus_Root(t *testing.T) {
	app := newStatusApp(memory.NewStatusRepository())

	code, raw := get(t, app, "/api/")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Hello World"}`, string(raw))
}

func TestStatus_CreateThenList(t *testing.T) {
	app := newStatusApp(memory.NewStatusRepository())

	code, raw := postJSON(t, app, "/api/status", `{"client_name":"clinic-frontend"}`)
	require.Equal(t, http.StatusOK, code)

	var created status.Check
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "clinic-frontend", created.ClientName)
	assert.WithinDuration(t, time.Now(), created.Timestamp, time.Minute)

	code, raw = get(t, app, "/api/status")
	require.Equal(t, http.StatusOK, code)

	var listed []status.Check
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestStatus_ListPaging(t *testing.T) {
	app := newStatusApp(memory.NewStatusRepository())
	for _, name := range []string{"a", "b", "c"} {
		code, _ := postJSON(t, app, "/api/status", `{"client_name":"`+name+`"}`)
		require.Equal(t, http.StatusOK, code)
	}

	code, raw := get(t, app, "/api/status?limit=1&offset=1")
	require.Equal(t, http.StatusOK, code)
	var page []status.Check
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ClientName)

	code, raw = get(t, app, "/api/status?limit=abc&offset=-1")
	require.Equal(t, http.StatusOK, code)
	page = nil
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Len(t, page, 3)
}

func TestStatus_ListEmptyIsArray(t *testing.T) {
	app := newStatusApp(memory.NewStatusRepository())

	code, raw := get(t, app, "/api/status")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestStatus_CreateValidation(t *testing.T) {
	app := newStatusApp(memory.NewStatusRepository())

	code, raw := postJSON(t, app, "/api/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "client_name is required", decodeDetail(t, raw))

	code, raw = postJSON(t, app, "/api/status", `{"client_name":"  "}`)
	require.Equal(t, http.StatusOK, code)
	var created status.Check
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "  ", created.ClientName)

	code, _ = postJSON(t, app, "/api/status", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatus_RepositoryFailure(t *testing.T) {
	app := newStatusApp(failingStatusRepo{})

	code, raw := postJSON(t, app, "/api/status", `{"client_name":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "failed to save status check", decodeDetail(t, raw))

	code, _ = get(t, app, "/api/status")
	assert.Equal(t, http.StatusInternalServerError, code)
}

type stubReadiness struct{ err error }

func (s stubReadiness) Ready(context.Context) error { return s.err }

var _ health.ReadinessUseCase = stubReadiness{}

func TestHealth_Probes(t *testing.T) {
	newApp := func(err error) *fiber.App {
		h := NewHealthHandler(stubReadiness{err: err})
		app := fiber.New()
		app.Get("/health", h.Health)
		app.Get("/ready", h.Ready)
		return app
	}

	code, raw := get(t, newApp(errors.New("down")), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))

	code, raw = get(t, newApp(nil), "/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ready"}`, string(raw))

	code, raw = get(t, newApp(errors.New("env:GEMINI_API_KEY: GEMINI_API_KEY is not set")), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.JSONEq(t, `{"status":"not_ready","details":"env:GEMINI_API_KEY: GEMINI_API_KEY is not set"}`, string(raw))
}
