package http

import (
	"encoding/hex"
	"encoding/json"
	"net/url"

	"crypto/rand"

	"github.com/gofiber/fiber/v2"
	"github.com/tiendaflow/tienda-core/internal/application/auth"
	"github.com/tiendaflow/tienda-core/internal/application/dto"
	"github.com/tiendaflow/tienda-core/internal/infrastructure/oauth"
)

const oauthStateCookie = "oauth_state"

// AuthHandler maneja registro, login local y el flujo de Google OAuth.
type AuthHandler struct {
	uc          *auth.AuthUseCase
	google      *oauth.GoogleClient
	frontendURL string
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, google *oauth.GoogleClient, frontendURL string) *AuthHandler {
	return &AuthHandler{uc: uc, google: google, frontendURL: frontendURL}
}

// Register registro local: tienda + usuario owner en una transacción.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login login local con email y password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve el perfil mínimo resuelto del token (después del middleware de auth).
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"id":        GetUserID(c),
		"email":     GetEmail(c),
		"tienda_id": GetStoreID(c),
		"role":      GetRole(c),
	})
}

// GoogleAuth inicia el flujo OAuth: redirige al consentimiento de Google.
func (h *AuthHandler) GoogleAuth(c *fiber.Ctx) error {
	state, err := randomState()
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{Name: oauthStateCookie, Value: state, HTTPOnly: true, SameSite: "Lax"})
	return c.Redirect(h.google.AuthURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback completa el flujo: intercambia el código, aprovisiona o loguea,
// y redirige al frontend con token y perfil serializado en la query.
// Cualquier fallo redirige a /login?error=google_auth_failed: el login no se
// considera exitoso.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	failURL := h.frontendURL + "/login?error=google_auth_failed"

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" || state != c.Cookies(oauthStateCookie) {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}
	c.ClearCookie(oauthStateCookie)

	profile, err := h.google.FetchProfile(c.Context(), code)
	if err != nil {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}
	out, err := h.uc.FederatedLogin(profile.ID, profile.Email, profile.Name)
	if err != nil {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}

	userJSON, err := json.Marshal(out.User)
	if err != nil {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}
	target := h.frontendURL + "/auth/callback?token=" + url.QueryEscape(out.Token) +
		"&user=" + url.QueryEscape(string(userJSON))
	return c.Redirect(target, fiber.StatusTemporaryRedirect)
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
