package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"garantias-service/internal/middleware"
	"garantias-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Proveedor de identidad falso: acepta solo el token "valido".
func fakeAuthProvider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer valido" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"email":"g@ar.com","name":"Gaby","role":"garantias"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func authedRouter(authURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(service.NewAuthService(authURL)))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetInt("userID"),
			"email": c.GetString("userEmail"),
			"role":  c.GetString("userRole"),
		})
	})
	return r
}

func TestAuthMiddlewareSinHeader(t *testing.T) {
	r := authedRouter(fakeAuthProvider(t).URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareTokenInvalido(t *testing.T) {
	r := authedRouter(fakeAuthProvider(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer chafa")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareTokenValido(t *testing.T) {
	r := authedRouter(fakeAuthProvider(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer valido")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"email":"g@ar.com","role":"garantias"}`, w.Body.String())
}

func TestSoloGarantias(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := func(rol string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set("userRole", rol) })
		r.Use(middleware.SoloGarantias())
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	casos := map[string]int{
		service.RolGarantias:   http.StatusOK,
		service.RolAdmin:       http.StatusOK,
		service.RolSolicitante: http.StatusForbidden,
		"":                     http.StatusForbidden,
	}
	for rol, esperado := range casos {
		w := httptest.NewRecorder()
		router(rol).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, esperado, w.Code, "rol %q", rol)
	}
}
