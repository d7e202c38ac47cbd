package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertymasters_backend/pkg/features"
	"propertymasters_backend/pkg/store"
)

func newApp(t *testing.T, flags features.Flags) *fiber.App {
	t.Helper()
	st, err := store.NewMemDB(store.Options{})
	require.NoError(t, err)
	return New(Deps{
		Store:          st,
		EmailTransport: "log",
		Features:       flags,
	})
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var obj map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &obj))
	}
	return resp.StatusCode, obj
}

func TestHealth(t *testing.T) {
	app := newApp(t, nil)

	status, body := call(t, app, http.MethodGet, "/api/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["store"])
	assert.Equal(t, "log", body["emailTransport"])
}

func TestAdminRoutesGatedByDefault(t *testing.T) {
	app := newApp(t, features.Flags{features.ContactCompat: true})

	status, body := call(t, app, http.MethodGet, "/api/contact-inquiries", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])

	status, _ = call(t, app, http.MethodPut, "/api/contact-inquiries/x/status", `{"status":"closed"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	// submission stays public
	status, _ = call(t, app, http.MethodPost, "/api/contact-inquiries",
		`{"name":"Jane","email":"jane@example.com","message":"Hi","consent":true}`)
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestAdminRoutesEnabled(t *testing.T) {
	app := newApp(t, features.Flags{features.AdminInquiries: true})

	status, body := call(t, app, http.MethodPost, "/api/contact-inquiries",
		`{"name":"Jane","email":"jane@example.com","message":"Hi","consent":true}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, got := call(t, app, http.MethodGet, "/api/contact-inquiries/"+body["id"].(string), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "pending", got["status"])
}

func TestContactCompatGate(t *testing.T) {
	body := `{"name":"Jane","email":"jane@example.com","message":"Hi"}`

	status, resp := call(t, newApp(t, features.Flags{features.ContactCompat: true}), http.MethodPost, "/api/contact", body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, resp["ok"])

	status, _ = call(t, newApp(t, features.Flags{}), http.MethodPost, "/api/contact", body)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUnknownRoute(t *testing.T) {
	app := newApp(t, nil)

	status, body := call(t, app, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])
}

func TestPropertyRoutes(t *testing.T) {
	app := newApp(t, nil)

	status, created := call(t, app, http.MethodPost, "/api/properties",
		`{"name":"Centre 34","address":"Edmonton, AB","totalSF":20165,"occupiedSF":20165,"propertyType":"office"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, got := call(t, app, http.MethodGet, "/api/properties/slug/centre-34", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, created["id"], got["id"])

	status, _ = call(t, app, http.MethodDelete, "/api/properties/"+created["id"].(string), "")
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestCORS(t *testing.T) {
	st, err := store.NewMemDB(store.Options{})
	require.NoError(t, err)
	app := New(Deps{Store: st, CORSOrigins: "https://propertymasters.ca"})

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Origin", "https://propertymasters.ca")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://propertymasters.ca", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestErrorHandlerHidesDetails(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	status, body := call(t, app, http.MethodGet, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRecoverFromPanic(t *testing.T) {
	st, err := store.NewMemDB(store.Options{})
	require.NoError(t, err)
	app := New(Deps{Store: st})
	app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })

	status, body := call(t, app, http.MethodGet, "/panic", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
}
