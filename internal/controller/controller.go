package controller

import (
	"errors"
	"net/http"
	"strconv"

	"garantias-service/internal/dto"
	"garantias-service/internal/model"
	"garantias-service/internal/repository"
	"garantias-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SolicitudController struct {
	Service *service.SolicitudService
}

func NewSolicitudController(s *service.SolicitudService) *SolicitudController {
	return &SolicitudController{Service: s}
}

// GET /auth/me — identidad y rol de la sesión actual
func (ctl *SolicitudController) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MeResponse{
		ID:    c.GetInt("userID"),
		Email: c.GetString("userEmail"),
		Role:  c.GetString("userRole"),
	})
}

// GET /solicitudes — lista paginada con X-Total-Count.
// El solicitante siempre queda filtrado a su propio correo; solo el área de
// garantías puede pedir email=all o el correo de alguien más.
func (ctl *SolicitudController) ListSolicitudes(c *gin.Context) {
	f := service.ListFilter{
		Q:     c.Query("q"),
		Start: atoiDefault(c.Query("_start"), 0),
		End:   atoiDefault(c.Query("_end"), 20),
	}

	rol := c.GetString("userRole")
	if service.EsAreaGarantias(rol) {
		email := c.Query("email")
		if email != "" && email != "all" {
			f.Email = email
		}
	} else {
		f.Email = c.GetString("userEmail")
	}

	rows, total, err := ctl.Service.Listar(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.SolicitudListItem, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.SolicitudListItem{
			ID:            s.ID,
			EstadoCode:    s.EstadoCode,
			Email:         s.Email,
			TicketNumero:  s.TicketNumero,
			ClienteNombre: s.ClienteNombre,
			PrioridadID:   s.PrioridadID,
			CreadoEn:      s.CreadoEn,
		})
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, out)
}

// POST /solicitudes
func (ctl *SolicitudController) CreateSolicitud(c *gin.Context) {
	var req dto.CreateSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sol, err := ctl.Service.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sol)
}

// GET /solicitudes/:id — la respuesta incluye qué puede hacer el rol con
// esta solicitud: transiciones disponibles y candado de items.
func (ctl *SolicitudController) GetSolicitud(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	sol, err := ctl.Service.Obtener(c.Request.Context(), id)
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ctl.detail(c, sol))
}

func (ctl *SolicitudController) detail(c *gin.Context, sol *model.Solicitud) dto.SolicitudDetail {
	rol := c.GetString("userRole")
	d := dto.SolicitudDetail{Solicitud: *sol}
	if service.EsAreaGarantias(rol) {
		d.Acciones = service.Acciones(sol.EstadoCode)
		d.ItemsBloqueados = service.EsEstadoFinal(sol.EstadoCode)
	} else {
		// El solicitante nunca ve acciones de transición y solo agrega
		// items mientras la solicitud sigue recién creada.
		d.Acciones = []string{}
		d.ItemsBloqueados = sol.EstadoCode != service.EstadoCreada
	}
	return d
}

// PUT /solicitudes/:id — clasificación de garantía + folio SAI + medio de
// entrega, previo a aprobar.
func (ctl *SolicitudController) SetClasificacion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var req dto.ClasificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sol, err := ctl.Service.SetClasificacion(c.Request.Context(), id, req)
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ctl.detail(c, sol))
}

// POST /solicitudes/:id/estado
func (ctl *SolicitudController) CambiarEstado(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var req dto.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := req.ActorID
	if actorID == 0 {
		actorID = c.GetInt("userID")
	}

	sol, err := ctl.Service.CambiarEstado(c.Request.Context(), id, req.A, req.Nota, actorID)
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ctl.detail(c, sol))
}

// POST /solicitudes/:id/items — abierto a solicitantes mientras la solicitud
// siga en CREADA; el servicio aplica el candado por rol.
func (ctl *SolicitudController) AddItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sol, err := ctl.Service.AgregarItem(c.Request.Context(), id, req, c.GetString("userRole"))
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ctl.detail(c, sol))
}

// POST /solicitudes/items/:itemId/estado — status de pieza o cantidad, un
// campo por llamada.
func (ctl *SolicitudController) CambiarEstadoItem(c *gin.Context) {
	itemID := c.Param("itemId")

	var req dto.ItemEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	switch {
	case req.Cantidad != nil:
		err = ctl.Service.CambiarCantidadItem(c.Request.Context(), itemID, *req.Cantidad)
	case req.Status != "":
		err = ctl.Service.CambiarStatusItem(c.Request.Context(), itemID, req.Status)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "se requiere status o cantidad"})
		return
	}
	if err != nil {
		ctl.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item actualizado"})
}

// PUT /solicitudes/motivo_item/:id/items/:itemId
func (ctl *SolicitudController) CambiarMotivoItem(c *gin.Context) {
	ctl.updateItemField(c, func(id int, itemID string) error {
		var req dto.ItemMotivoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return errBadRequest(err)
		}
		return ctl.Service.CambiarMotivoItem(c.Request.Context(), id, itemID, req.Motivo)
	})
}

// PUT /solicitudes/descripcion_item/:id/items/:itemId
func (ctl *SolicitudController) CambiarDescripcionItem(c *gin.Context) {
	ctl.updateItemField(c, func(id int, itemID string) error {
		var req dto.ItemDescripcionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return errBadRequest(err)
		}
		return ctl.Service.CambiarDescripcionItem(c.Request.Context(), id, itemID, req.Descripcion)
	})
}

// PUT /solicitudes/costo_item/:id/items/:itemId
func (ctl *SolicitudController) CambiarCostoItem(c *gin.Context) {
	ctl.updateItemField(c, func(id int, itemID string) error {
		var req dto.ItemCostoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return errBadRequest(err)
		}
		return ctl.Service.CambiarCostoItem(c.Request.Context(), id, itemID, req.CostoUnitario)
	})
}

func (ctl *SolicitudController) updateItemField(c *gin.Context, fn func(id int, itemID string) error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	if err := fn(id, c.Param("itemId")); err != nil {
		ctl.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item actualizado"})
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }

func errBadRequest(err error) error { return badRequestError{err: err} }

// writeError traduce errores de negocio a códigos HTTP. Los mensajes llegan
// al cliente tal cual; él decide cómo mostrarlos.
func (ctl *SolicitudController) writeError(c *gin.Context, err error) {
	var br badRequestError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrItemNoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTransicionInvalida),
		errors.Is(err, service.ErrEstadoFinal),
		errors.Is(err, service.ErrSinClasificacion),
		errors.Is(err, service.ErrItemsBloqueados),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrItemNoEditable),
		errors.Is(err, service.ErrClasificacionInvalida),
		errors.Is(err, service.ErrMedioEntregaInvalido),
		errors.Is(err, service.ErrStatusItemInvalido),
		errors.Is(err, service.ErrMotivoInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &br):
		c.JSON(http.StatusBadRequest, gin.H{"error": br.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
