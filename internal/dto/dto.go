// dto.go
package dto

import (
	"time"

	"garantias-service/internal/model"
)

// CreateSolicitudRequest usa la forma desnormalizada: ticket y cliente
// viajan como texto, no como llaves foráneas.
type CreateSolicitudRequest struct {
	Email             string `json:"email" binding:"required,email"`
	UsuarioID         int    `json:"usuario_id" binding:"required"`
	PrioridadID       int    `json:"prioridad_id"`
	TipoGarantiaID    int    `json:"tipo_garantia_id"`
	GestionGarantiaID int    `json:"gestion_garantia_id"`
	Observaciones     string `json:"observaciones"`
	TicketNumero      string `json:"ticket_numero" binding:"required"`
	ClienteNombre     string `json:"cliente_nombre" binding:"required"`
	TicketIDExterno   string `json:"ticket_id_externo"`
}

type CambiarEstadoRequest struct {
	A       string `json:"a" binding:"required"`
	Nota    string `json:"nota"`
	ActorID int    `json:"actor_id"`
}

// ClasificacionRequest es el PUT previo a aprobar: clasificación obligatoria,
// folio SAI y medio de entrega opcionales.
type ClasificacionRequest struct {
	ClasificacionGarantia string `json:"clasificacion_garantia" binding:"required"`
	FolioSAI              string `json:"folio_sai"`
	MedioEntrega          string `json:"medio_entrega"`
}

type AddItemRequest struct {
	ProductoID     string  `json:"producto_id"`
	NumeroParte    string  `json:"numero_parte" binding:"required"`
	Descripcion    string  `json:"descripcion"`
	Cantidad       float64 `json:"cantidad" binding:"required"`
	Unidad         string  `json:"unidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	CostoUnitario  float64 `json:"costo_unitario"`
	MonedaPrecio   string  `json:"moneda_precio"`
	MonedaCosto    string  `json:"moneda_costo"`
	Status         string  `json:"status"`
	Motivo         string  `json:"motivo"`
	Comentarios    string  `json:"comentarios"`
}

// ItemEstadoRequest cambia un campo de seguimiento a la vez, igual que el
// cliente original (status o cantidad; nunca ambos en la misma llamada).
type ItemEstadoRequest struct {
	Status   string   `json:"status"`
	Cantidad *float64 `json:"cantidad"`
}

type ItemMotivoRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

type ItemDescripcionRequest struct {
	Descripcion string `json:"descripcion" binding:"required"`
}

type ItemCostoRequest struct {
	CostoUnitario float64 `json:"costo_unitario" binding:"required"`
}

// SolicitudDetail agrega al documento lo que cada rol puede hacer con él:
// las transiciones disponibles y si la alta de items está bloqueada.
type SolicitudDetail struct {
	model.Solicitud
	Acciones        []string `json:"acciones"`
	ItemsBloqueados bool     `json:"items_bloqueados"`
}

type MeResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SolicitudListItem struct {
	ID            int       `json:"id"`
	EstadoCode    string    `json:"estado_code"`
	Email         string    `json:"email"`
	TicketNumero  string    `json:"ticket_numero"`
	ClienteNombre string    `json:"cliente_nombre"`
	PrioridadID   int       `json:"prioridad_id"`
	CreadoEn      time.Time `json:"creado_en"`
}
