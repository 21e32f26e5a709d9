package authentication

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
	"github.com/ismaelstrey/quiz-biblico/src/core/middleware"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, database.ConnectTest(strings.ReplaceAll(t.Name(), "/", "_")))

	app := fiber.New(fiber.Config{ErrorHandler: helpers.ErrorHandler(logging.New("error"))})
	app.Use(requestid.New())
	group := app.Group("/auth")
	group.Post("/register", Register)
	group.Post("/login", Login)
	group.Post("/logout", Logout)
	group.Get("/me", middleware.Protected(), Me)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	app := setupApp(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/auth/register", fiber.Map{
		"name": "Maria", "email": "Maria@Example.com", "password": "secret1",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Maria", user["name"])
	assert.Equal(t, "maria@example.com", user["email"], "email is normalized to lower case")
	assert.Nil(t, user["password"], "hash never leaves the server")

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "registration sets the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
	assert.NotContains(t, cookie.Value, "session_", "token must not embed a parseable user id")

	var stored models.User
	require.NoError(t, database.DB.Where("email = ?", "maria@example.com").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	app := setupApp(t)

	payload := fiber.Map{"name": "Maria", "email": "maria@example.com", "password": "secret1"}
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, parsed := doJSON(t, app, http.MethodPost, "/auth/register", payload)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := parsed["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT_ERROR", errBody["type"])
	assert.Equal(t, float64(http.StatusConflict), errBody["statusCode"])
}

func TestRegister_ValidationDetails(t *testing.T) {
	app := setupApp(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/auth/register", fiber.Map{
		"name": "M", "email": "not-an-email", "password": "123",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := parsed["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["type"])
	details := errBody["details"].([]interface{})
	assert.Len(t, details, 3)
}

func TestLogin_WrongCredentialsIndistinguishable(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", fiber.Map{
		"name": "Maria", "email": "maria@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respWrongPwd, parsedWrongPwd := doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"email": "maria@example.com", "password": "wrong",
	})
	respUnknown, parsedUnknown := doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"email": "nobody@example.com", "password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, respWrongPwd.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	wrongBody := parsedWrongPwd["error"].(map[string]interface{})
	unknownBody := parsedUnknown["error"].(map[string]interface{})
	assert.Equal(t, wrongBody["message"], unknownBody["message"])
	assert.Equal(t, "AUTHENTICATION_ERROR", wrongBody["type"])
}

func TestLoginAndMe_RoundTrip(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", fiber.Map{
		"name": "Maria", "email": "maria@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"email": "maria@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	resp, parsed := doJSON(t, app, http.MethodGet, "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := parsed["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "maria@example.com", user["email"])
}

func TestMe_WithoutSession(t *testing.T) {
	app := setupApp(t)

	resp, parsed := doJSON(t, app, http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errBody := parsed["error"].(map[string]interface{})
	assert.Equal(t, "AUTHENTICATION_ERROR", errBody["type"])
}

func TestMe_GarbageToken(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/auth/me", nil,
		&http.Cookie{Name: middleware.SessionCookie, Value: "session_123_456"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"legacy parseable tokens are rejected, not trusted")
}

func TestLogout_ClearsCookie(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0 || !cookie.Expires.IsZero())
}
