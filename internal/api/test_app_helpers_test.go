package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/i18n"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecast-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, i18nManager, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	switch payload := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(payload)
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if reader != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func assertStatusCode(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d (body: %s)", expected, response.StatusCode, string(raw))
	}
}

func readJSONBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	payload := map[string]any{}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode json response: %v (body: %s)", err, string(raw))
	}
	return payload
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]any{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read error body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode error body: %v (body: %s)", err, string(raw))
	}
	message, _ := payload["error"].(string)
	return message
}

func bearer(token string) map[string]string {
	return map[string]string{fiber.HeaderAuthorization: "Bearer " + token}
}

func createTestEntry(t *testing.T, app *fiber.App, day string, headers map[string]string) {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/entries", map[string]string{"period_start": day}, headers)
	assertStatusCode(t, response, http.StatusCreated)
}

// assertJSONFields compares decoded fields by their printed form, so JSON
// numbers can be given as ints.
func assertJSONFields(t *testing.T, payload map[string]any, expected map[string]any) {
	t.Helper()
	for key, want := range expected {
		got, ok := payload[key]
		if !ok {
			t.Fatalf("expected field %q in %v", key, payload)
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("expected %s=%v, got %v", key, want, got)
		}
	}
}
