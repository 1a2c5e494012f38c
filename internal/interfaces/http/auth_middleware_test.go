package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/pkg/jwt"
)

const testSecret = "segredo-de-teste-nao-usar-em-producao"

func buildTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": GetUserID(c),
			"email":   GetEmail(c),
			"role":    GetRole(c),
		})
	})
	app.Get("/protegido", handlers...)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", "ana@example.com", role, "setup-rastreio", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, token string) (*nethttp.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	_ = json.Unmarshal(body, &payload)
	return resp, payload
}

func TestAuthMiddleware_SemHeader(t *testing.T) {
	app := buildTestApp()
	resp, payload := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", payload["code"])
}

func TestAuthMiddleware_HeaderMalFormado(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp()
	resp, payload := doRequest(t, app, "nao-e-um-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "ana@example.com", entity.RoleLeitor, "setup-rastreio", -5)
	require.NoError(t, err)

	app := buildTestApp()
	resp, payload := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_SecretErrado(t *testing.T) {
	token, err := jwt.Generate("outro-segredo", "user-1", "ana@example.com", entity.RoleLeitor, "setup-rastreio", 60)
	require.NoError(t, err)

	app := buildTestApp()
	resp, _ := doRequest(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CarregaClaims(t *testing.T) {
	app := buildTestApp()
	resp, payload := doRequest(t, app, tokenForRole(t, entity.RoleEditor))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-1", payload["user_id"])
	assert.Equal(t, "ana@example.com", payload["email"])
	assert.Equal(t, entity.RoleEditor, payload["role"])
}

func TestRequireRole_PapelPermitido(t *testing.T) {
	app := buildTestApp(entity.RoleEditor, entity.RoleDesenvolvedor)
	resp, _ := doRequest(t, app, tokenForRole(t, entity.RoleEditor))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_PapelNegado(t *testing.T) {
	app := buildTestApp(entity.RoleDesenvolvedor)
	resp, payload := doRequest(t, app, tokenForRole(t, entity.RoleLeitor))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", payload["code"])
}

func TestRequireRole_TokenSemPapel(t *testing.T) {
	app := buildTestApp(entity.RoleLeitor)
	resp, payload := doRequest(t, app, tokenForRole(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", payload["code"])
}

func TestJWT_GeraEValida(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-9", "dev@example.com", entity.RoleDesenvolvedor, "setup-rastreio", 60)
	require.NoError(t, err)

	userID, email, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
	assert.Equal(t, "dev@example.com", email)
	assert.Equal(t, entity.RoleDesenvolvedor, role)
}

func TestJWT_SecretVazio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "ana@example.com", entity.RoleLeitor, "setup-rastreio", 60)
	assert.Error(t, err)

	_, _, _, err = jwt.Parse("", "qualquer")
	assert.Error(t, err)
}
