package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"garantias-service/internal/controller"
	"garantias-service/internal/dto"
	"garantias-service/internal/model"
	"garantias-service/internal/service"
	"garantias-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuth reemplaza al middleware de autenticación real: la identidad viaja
// en headers de prueba en lugar de validarse contra el servicio de auth.
func stubAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetHeader("X-Test-Role")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token requerido"})
			return
		}
		id, _ := strconv.Atoi(c.GetHeader("X-Test-UserID"))
		c.Set("userID", id)
		c.Set("userEmail", c.GetHeader("X-Test-Email"))
		c.Set("userName", "Usuario de Prueba")
		c.Set("userRole", role)
		c.Next()
	}
}

func newRouter(repo *testutil.FakeSolicitudRepo, notifier *testutil.FakeNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewSolicitudService(repo, notifier, zerolog.Nop())
	sc := controller.NewSolicitudController(svc)
	cc := controller.NewCatalogoController(nil)

	r := gin.New()
	controller.RegisterRoutes(r, sc, cc, stubAuth())
	return r
}

func doJSON(r *gin.Engine, method, path, role, email string, userID int, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-Test-Role", role)
		req.Header.Set("X-Test-Email", email)
		req.Header.Set("X-Test-UserID", strconv.Itoa(userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSinTokenRegresa401(t *testing.T) {
	r := newRouter(testutil.NewFakeSolicitudRepo(), &testutil.FakeNotifier{})
	w := doJSON(r, http.MethodGet, "/solicitudes", "", "", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMe(t *testing.T) {
	r := newRouter(testutil.NewFakeSolicitudRepo(), &testutil.FakeNotifier{})
	w := doJSON(r, http.MethodGet, "/auth/me", service.RolGarantias, "g@ar.com", 7, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, 7, me.ID)
	assert.Equal(t, "g@ar.com", me.Email)
	assert.Equal(t, service.RolGarantias, me.Role)
}

func TestCrearYConsultarSolicitud(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	r := newRouter(repo, &testutil.FakeNotifier{})

	w := doJSON(r, http.MethodPost, "/solicitudes", service.RolSolicitante, "x@y.com", 4, gin.H{
		"email":          "x@y.com",
		"usuario_id":     4,
		"ticket_numero":  "T-100",
		"cliente_nombre": "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var creada model.Solicitud
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creada))
	assert.Equal(t, service.EstadoCreada, creada.EstadoCode)

	// El área de garantías ve las transiciones disponibles
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/solicitudes/%d", creada.ID), service.RolGarantias, "g@ar.com", 7, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var det dto.SolicitudDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &det))
	assert.Equal(t, []string{service.EstadoEnRevision, service.EstadoCancelada}, det.Acciones)
	assert.False(t, det.ItemsBloqueados)

	// El solicitante no ve acciones y conserva el candado abierto en CREADA
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/solicitudes/%d", creada.ID), service.RolSolicitante, "x@y.com", 4, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &det))
	assert.Empty(t, det.Acciones)
	assert.False(t, det.ItemsBloqueados)
}

func TestCrearSolicitudInvalida(t *testing.T) {
	r := newRouter(testutil.NewFakeSolicitudRepo(), &testutil.FakeNotifier{})
	w := doJSON(r, http.MethodPost, "/solicitudes", service.RolSolicitante, "x@y.com", 4, gin.H{
		"email": "no-es-correo",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolicitanteNoPuedeCambiarEstado(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoCreada, Email: "x@y.com"})
	r := newRouter(repo, &testutil.FakeNotifier{})

	w := doJSON(r, http.MethodPost, "/solicitudes/1/estado", service.RolSolicitante, "x@y.com", 4, gin.H{
		"a": service.EstadoEnRevision,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCambiarEstadoComoGarantias(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoCreada, Email: "x@y.com"})
	r := newRouter(repo, &testutil.FakeNotifier{})

	w := doJSON(r, http.MethodPost, "/solicitudes/1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"a":    service.EstadoEnRevision,
		"nota": "revisión iniciada",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var det dto.SolicitudDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &det))
	assert.Equal(t, service.EstadoEnRevision, det.EstadoCode)
	require.NotEmpty(t, det.Bitacora)
	last := det.Bitacora[len(det.Bitacora)-1]
	assert.Equal(t, "revisión iniciada", last.Nota)
	assert.Equal(t, "7", last.Actor) // sin actor_id en el body cae al userID de la sesión
}

func TestTransicionInvalidaRegresa400(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoCreada, Email: "x@y.com"})
	r := newRouter(repo, &testutil.FakeNotifier{})

	w := doJSON(r, http.MethodPost, "/solicitudes/1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"a": service.EstadoEntregada,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntregaConZohoCaidoSigueRespondiendo200(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoLiberada, Email: "x@y.com", TicketIDExterno: "Z-900"})
	notifier := &testutil.FakeNotifier{Err: assert.AnError}
	r := newRouter(repo, notifier)

	w := doJSON(r, http.MethodPost, "/solicitudes/1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"a": service.EstadoEntregada,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, notifier.Llamadas())

	var det dto.SolicitudDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &det))
	assert.Equal(t, service.EstadoEntregada, det.EstadoCode)
}

func TestClasificacionPreviaAprobacion(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoEnRevision, Email: "x@y.com"})
	r := newRouter(repo, &testutil.FakeNotifier{})

	// Aprobar sin clasificar se rechaza
	w := doJSON(r, http.MethodPost, "/solicitudes/1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"a": service.EstadoAprobada,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/solicitudes/1", service.RolGarantias, "g@ar.com", 7, gin.H{
		"clasificacion_garantia": "Garantía de Equipo",
		"folio_sai":              "SAI-001",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/solicitudes/1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"a": service.EstadoAprobada,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSolicitanteAgregaItemSoloEnCreada(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoCreada, Email: "x@y.com"})
	repo.Seed(&model.Solicitud{ID: 2, EstadoCode: service.EstadoEnRevision, Email: "x@y.com"})
	r := newRouter(repo, &testutil.FakeNotifier{})

	item := gin.H{"numero_parte": "S04587", "descripcion": "Láser", "cantidad": 2, "unidad": "PIEZA", "costo_unitario": 10}

	w := doJSON(r, http.MethodPost, "/solicitudes/1/items", service.RolSolicitante, "x@y.com", 4, item)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/solicitudes/2/items", service.RolSolicitante, "x@y.com", 4, item)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListaConAlcancePorRol(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{ID: 1, EstadoCode: service.EstadoCreada, Email: "x@y.com", TicketNumero: "T-1", ClienteNombre: "Acme"})
	repo.Seed(&model.Solicitud{ID: 2, EstadoCode: service.EstadoCreada, Email: "otro@y.com", TicketNumero: "T-2", ClienteNombre: "Globex"})
	r := newRouter(repo, &testutil.FakeNotifier{})

	// El solicitante solo ve lo suyo aunque pida email=all
	w := doJSON(r, http.MethodGet, "/solicitudes?email=all", service.RolSolicitante, "x@y.com", 4, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []dto.SolicitudListItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "x@y.com", rows[0].Email)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	// Garantías ve todo con email=all
	w = doJSON(r, http.MethodGet, "/solicitudes?email=all", service.RolGarantias, "g@ar.com", 7, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 2)
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))

	// Búsqueda por texto
	w = doJSON(r, http.MethodGet, "/solicitudes?email=all&q=globex", service.RolGarantias, "g@ar.com", 7, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].ClienteNombre)
}

func TestEstadoDeItemStatusOCantidad(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{
		ID:         1,
		EstadoCode: service.EstadoEnRevision,
		Email:      "x@y.com",
		Items: []model.Item{{
			ID:            "it-1",
			NumeroParte:   "S04587",
			Cantidad:      2,
			Unidad:        "PIEZA",
			CostoUnitario: 10,
			CostoTotal:    20,
			Status:        "SIN_SEGUIMIENTO",
		}},
	})
	r := newRouter(repo, &testutil.FakeNotifier{})

	w := doJSON(r, http.MethodPost, "/solicitudes/items/it-1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"status": "Con el Cliente",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/solicitudes/items/it-1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"cantidad": 5,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Sin campo no hay nada que actualizar
	w = doJSON(r, http.MethodPost, "/solicitudes/items/it-1/estado", service.RolGarantias, "g@ar.com", 7, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Item inexistente
	w = doJSON(r, http.MethodPost, "/solicitudes/items/nope/estado", service.RolGarantias, "g@ar.com", 7, gin.H{
		"status": "Con el Cliente",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditarDescripcionSoloParteGenerica(t *testing.T) {
	repo := testutil.NewFakeSolicitudRepo()
	repo.Seed(&model.Solicitud{
		ID:         1,
		EstadoCode: service.EstadoEnRevision,
		Email:      "x@y.com",
		Items: []model.Item{
			{ID: "it-1", NumeroParte: "S09999", Cantidad: 1, Unidad: "PIEZA"},
			{ID: "it-2", NumeroParte: "S04587", Cantidad: 1, Unidad: "PIEZA"},
		},
	})
	r := newRouter(repo, &testutil.FakeNotifier{})

	w := doJSON(r, http.MethodPut, "/solicitudes/descripcion_item/1/items/it-1", service.RolGarantias, "g@ar.com", 7, gin.H{
		"descripcion": "Servicio de diagnóstico",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/solicitudes/descripcion_item/1/items/it-2", service.RolGarantias, "g@ar.com", 7, gin.H{
		"descripcion": "no aplica",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolicitudInexistenteRegresa404(t *testing.T) {
	r := newRouter(testutil.NewFakeSolicitudRepo(), &testutil.FakeNotifier{})
	w := doJSON(r, http.MethodGet, "/solicitudes/99", service.RolGarantias, "g@ar.com", 7, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
