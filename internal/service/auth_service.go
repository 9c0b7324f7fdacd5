package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Roles conocidos. "garantias" y "admin" forman el área de garantías.
const (
	RolGarantias   = "garantias"
	RolAdmin       = "admin"
	RolSolicitante = "solicitante"
)

func EsAreaGarantias(rol string) bool {
	return rol == RolGarantias || rol == RolAdmin
}

// Servicio que consulta al proveedor externo de identidad. El token nunca se
// valida localmente; el proveedor es la autoridad.
type AuthService struct {
	authURL string
	client  *http.Client
}

type AuthUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func NewAuthService(authURL string) *AuthService {
	return &AuthService{
		authURL: authURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Valida el token consultando /auth/me del proveedor de identidad.
func (a *AuthService) ValidateToken(token string) (*AuthUser, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/auth/me", a.authURL), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid token")
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
