package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"
	"catalog-mirror/feature/catalog/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Syncer) {
	t.Helper()
	app := fiber.New()
	syncer := new(mocks.Syncer)
	NewHandler(NewService(syncer, zap.NewNop())).RegisterRoutes(app)
	return app, syncer
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleFamilies(t *testing.T) {
	app, syncer := setupTestApp(t)
	syncer.On("Families").Return([]string{"gems", "modules"})
	syncer.On("SupportsIncremental", "gems").Return(false)
	syncer.On("SupportsIncremental", "modules").Return(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/catalog", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, []any{
		map[string]any{"name": "gems", "incremental": false},
		map[string]any{"name": "modules", "incremental": true},
	}, body["families"])
}

func TestHandleSync(t *testing.T) {
	t.Run("Full by default", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		syncer.On("FullSync", mock.Anything, "gems").Return(&reconcile.DiffResult{
			Changed: map[string][]string{"rails": {"7.0.8"}},
			Removed: []string{"old"},
			Fetched: 2,
		}, nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/catalog/gems/sync", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, []any{"old"}, body["removed"])
		assert.Equal(t, float64(2), body["fetched"])
		syncer.AssertExpectations(t)
	})

	t.Run("Incremental", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		syncer.On("IncrementalSync", mock.Anything, "modules").Return(&reconcile.IncrementalResult{
			Changed: []string{"puppetlabs-apt"},
			Scanned: 2,
		}, nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/catalog/modules/sync?mode=incremental", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, []any{"puppetlabs-apt"}, body["changed"])
		assert.Equal(t, false, body["fell_back"])
	})

	errorCases := []struct {
		name       string
		mode       string
		err        error
		wantStatus int
	}{
		{name: "Unknown family", mode: "full", err: fmt.Errorf("%w: crates", reconcile.ErrUnknownFamily), wantStatus: 404},
		{name: "Unsupported incremental", mode: "incremental", err: fmt.Errorf("%w: gems", reconcile.ErrIncrementalUnsupported), wantStatus: 409},
		{name: "Failed pass", mode: "full", err: errors.New("upstream down"), wantStatus: 500},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			app, syncer := setupTestApp(t)
			syncer.On("FullSync", mock.Anything, "gems").Return(nil, tt.err).Maybe()
			syncer.On("IncrementalSync", mock.Anything, "gems").Return(nil, tt.err).Maybe()

			resp, err := app.Test(httptest.NewRequest("POST", "/catalog/gems/sync?mode="+tt.mode, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.err.Error(), decode(t, resp.Body)["error"])
		})
	}

	t.Run("Invalid mode", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		resp, err := app.Test(httptest.NewRequest("POST", "/catalog/gems/sync?mode=partial", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		syncer.AssertNotCalled(t, "FullSync", mock.Anything, mock.Anything)
	})
}

func TestHandleRegister(t *testing.T) {
	t.Run("Registers release", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		record := reconcile.VersionRecord{Name: "nokogiri", Version: "1.16.2", Platform: "java"}
		syncer.On("Register", mock.Anything, "gems", record).Return(true, nil)

		req := httptest.NewRequest("POST", "/catalog/gems/register",
			strings.NewReader(`{"name":"nokogiri","version":"1.16.2","platform":"java"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, true, decode(t, resp.Body)["changed"])
	})

	t.Run("Invalid record", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		syncer.On("Register", mock.Anything, "gems", mock.Anything).
			Return(false, fmt.Errorf("%w: missing version", reconcile.ErrInvalidRecord))

		req := httptest.NewRequest("POST", "/catalog/gems/register", strings.NewReader(`{"name":"nokogiri"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Malformed body", func(t *testing.T) {
		app, _ := setupTestApp(t)
		req := httptest.NewRequest("POST", "/catalog/gems/register", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleLookup(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		syncer.On("Lookup", mock.Anything, "gems", "rails").Return([]string{"7.1.0", "7.0.8"}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/gems/rails", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decode(t, resp.Body)
		assert.Equal(t, "rails", body["name"])
		assert.Equal(t, []any{"7.1.0", "7.0.8"}, body["versions"])
	})

	t.Run("Missing", func(t *testing.T) {
		app, syncer := setupTestApp(t)
		syncer.On("Lookup", mock.Anything, "gems", "nope").Return(nil, mirror.ErrNotFound)

		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/gems/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestLoader(t *testing.T) {
	syncer := new(mocks.Syncer)
	syncer.On("Families").Return([]string{"gems"})

	feature := NewFeature(syncer, zap.NewNop())
	assert.Equal(t, "catalog", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
