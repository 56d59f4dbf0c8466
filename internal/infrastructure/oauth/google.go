package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tiendaflow/tienda-core/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile identidad mínima que entrega Google tras el intercambio de código.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleClient maneja el flujo authorization-code con Google para el login federado.
type GoogleClient struct {
	conf *oauth2.Config
}

// NewGoogleClient construye el cliente con el callback /api/auth/google/callback.
func NewGoogleClient(cfg config.OAuthConfig) *GoogleClient {
	return &GoogleClient{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BackendURL + "/api/auth/google/callback",
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL devuelve la URL de consentimiento de Google para el state dado.
func (c *GoogleClient) AuthURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// FetchProfile intercambia el código por un token y consulta el perfil del usuario.
func (c *GoogleClient) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("intercambiar código: %w", err)
	}
	client := c.conf.Client(ctx, token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("consultar perfil: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("consultar perfil: status %d", resp.StatusCode)
	}
	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decodificar perfil: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("perfil de Google sin email")
	}
	return &profile, nil
}
