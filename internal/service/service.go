package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"garantias-service/internal/dto"
	"garantias-service/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Interfaz que debe implementar repository
type SolicitudRepository interface {
	NextID(ctx context.Context) (int, error)
	Save(ctx context.Context, s *model.Solicitud) error
	FindByID(ctx context.Context, id int) (*model.Solicitud, error)
	FindByItemID(ctx context.Context, itemID string) (*model.Solicitud, error)
	Find(ctx context.Context, f ListFilter) ([]*model.Solicitud, int64, error)
	UpdateEstado(ctx context.Context, id int, estado string, entry model.Bitacora) error
	UpdateClasificacion(ctx context.Context, id int, clasificacion, folioSAI, medioEntrega string) error
	AddItem(ctx context.Context, id int, item model.Item) error
	UpdateItemStatus(ctx context.Context, itemID, status string) error
	UpdateItemCantidad(ctx context.Context, itemID string, cantidad, costoTotal float64) error
	UpdateItemMotivo(ctx context.Context, id int, itemID, motivo string) error
	UpdateItemDescripcion(ctx context.Context, id int, itemID, descripcion string) error
	UpdateItemCosto(ctx context.Context, id int, itemID string, costoUnitario, costoTotal float64) error
}

// ListFilter refleja los parámetros _start/_end/q/email de la API.
type ListFilter struct {
	Q     string
	Email string // vacío = sin filtro (solo área de garantías)
	Start int
	End   int
}

// EntregaNotifier publica el aviso de entrega en el sistema de tickets.
// Es best-effort: el servicio nunca falla una transición por él.
type EntregaNotifier interface {
	NotificarEntrega(ctx context.Context, s *model.Solicitud) error
}

// Errores de negocio exportados (los usa el controller)
var (
	ErrTransicionInvalida    = errors.New("transición de estado inválida")
	ErrEstadoFinal           = errors.New("no se puede cambiar el estado de una solicitud en estado final")
	ErrSinClasificacion      = errors.New("se requiere clasificación de garantía antes de aprobar")
	ErrItemsBloqueados       = errors.New("la solicitud ya no admite nuevos items")
	ErrCantidadInvalida      = errors.New("cantidad inválida para la unidad del item")
	ErrItemNoEditable        = errors.New("el item no permite editar descripción ni costo")
	ErrClasificacionInvalida = errors.New("clasificación de garantía no reconocida")
	ErrMedioEntregaInvalido  = errors.New("medio de entrega no reconocido")
	ErrStatusItemInvalido    = errors.New("status de pieza no reconocido")
	ErrMotivoInvalido        = errors.New("motivo de garantía no reconocido")
	ErrItemNoEncontrado      = errors.New("item no encontrado")
)

// Estados del ciclo de vida de una solicitud.
const (
	EstadoCreada     = "CREADA"
	EstadoEnRevision = "EN_REVISION"
	EstadoAprobada   = "APROBADA"
	EstadoRechazada  = "RECHAZADA"
	EstadoLiberada   = "LIBERADA"
	EstadoEntregada  = "ENTREGADA"
	EstadoCerrada    = "CERRADA"
	EstadoCancelada  = "CANCELADA"
)

// Transiciones permitidas (hardcodeadas por nombre); ninguna otra arista vale.
var transiciones = map[string][]string{
	EstadoCreada:     {EstadoEnRevision, EstadoCancelada},
	EstadoEnRevision: {EstadoAprobada, EstadoRechazada, EstadoCancelada},
	EstadoAprobada:   {EstadoLiberada, EstadoCancelada},
	EstadoLiberada:   {EstadoEntregada},
	EstadoEntregada:  {EstadoCerrada},
}

// Estados finales
var estadosFinales = map[string]bool{
	EstadoRechazada: true,
	EstadoCerrada:   true,
	EstadoCancelada: true,
}

func EsEstadoFinal(estado string) bool {
	return estadosFinales[estado]
}

// Acciones regresa las transiciones que salen de un estado; vacío para
// estados finales o desconocidos.
func Acciones(estado string) []string {
	acc := transiciones[estado]
	out := make([]string, len(acc))
	copy(out, acc)
	return out
}

type SolicitudService struct {
	repo     SolicitudRepository
	notifier EntregaNotifier
	log      zerolog.Logger
}

func NewSolicitudService(repo SolicitudRepository, notifier EntregaNotifier, log zerolog.Logger) *SolicitudService {
	return &SolicitudService{repo: repo, notifier: notifier, log: log}
}

// Crear da de alta la solicitud en CREADA con su primer movimiento de bitácora.
func (s *SolicitudService) Crear(ctx context.Context, req dto.CreateSolicitudRequest) (*model.Solicitud, error) {
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sol := &model.Solicitud{
		ID:                id,
		EstadoCode:        EstadoCreada,
		Email:             req.Email,
		UsuarioID:         req.UsuarioID,
		ClienteNombre:     req.ClienteNombre,
		TicketNumero:      req.TicketNumero,
		TicketIDExterno:   req.TicketIDExterno,
		PrioridadID:       req.PrioridadID,
		TipoGarantiaID:    req.TipoGarantiaID,
		GestionGarantiaID: req.GestionGarantiaID,
		Observaciones:     req.Observaciones,
		Items:             []model.Item{},
		Bitacora: []model.Bitacora{
			{
				ID:     uuid.NewString(),
				TS:     now,
				Accion: "creada",
				A:      EstadoCreada,
				Actor:  strconv.Itoa(req.UsuarioID),
			},
		},
		CreadoEn:      now,
		ActualizadoEn: now,
	}
	if sol.PrioridadID == 0 {
		sol.PrioridadID = 1
	}
	if sol.TipoGarantiaID == 0 {
		sol.TipoGarantiaID = 1
	}
	if sol.GestionGarantiaID == 0 {
		sol.GestionGarantiaID = 1
	}

	if err := s.repo.Save(ctx, sol); err != nil {
		return nil, err
	}
	return sol, nil
}

// Getters
func (s *SolicitudService) Obtener(ctx context.Context, id int) (*model.Solicitud, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SolicitudService) Listar(ctx context.Context, f ListFilter) ([]*model.Solicitud, int64, error) {
	return s.repo.Find(ctx, f)
}

// CambiarEstado valida y realiza la transición entre estados según las
// reglas de negocio. El estado que se regresa siempre es el releído de la
// base, nunca uno calculado en memoria.
func (s *SolicitudService) CambiarEstado(ctx context.Context, id int, a, nota string, actorID int) (*model.Solicitud, error) {
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actual := sol.EstadoCode

	if estadosFinales[actual] {
		return nil, ErrEstadoFinal
	}
	if !contains(transiciones[actual], a) {
		return nil, ErrTransicionInvalida
	}

	// Aprobar exige que la clasificación ya esté guardada (PUT previo).
	if a == EstadoAprobada && sol.ClasificacionGarantia == "" {
		return nil, ErrSinClasificacion
	}

	// Al entregar se comenta el resumen en el ticket externo. Si falla,
	// se registra y la transición continúa.
	if a == EstadoEntregada && sol.TicketIDExterno != "" && s.notifier != nil {
		if err := s.notifier.NotificarEntrega(ctx, sol); err != nil {
			s.log.Error().Err(err).
				Int("solicitud_id", sol.ID).
				Str("ticket_id_externo", sol.TicketIDExterno).
				Msg("no se pudo comentar la entrega en el ticket")
		}
	}

	entry := model.Bitacora{
		ID:     uuid.NewString(),
		TS:     time.Now().UTC(),
		Accion: "estado",
		De:     actual,
		A:      a,
		Nota:   nota,
		Actor:  strconv.Itoa(actorID),
	}
	if err := s.repo.UpdateEstado(ctx, id, a, entry); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// SetClasificacion guarda clasificación + folio SAI + medio de entrega en una
// sola actualización, antes de que el cliente dispare la transición a APROBADA.
func (s *SolicitudService) SetClasificacion(ctx context.Context, id int, req dto.ClasificacionRequest) (*model.Solicitud, error) {
	if !contains(ClasificacionOptions, req.ClasificacionGarantia) {
		return nil, ErrClasificacionInvalida
	}
	if req.MedioEntrega != "" && !contains(MedioEntregaOptions, req.MedioEntrega) {
		return nil, ErrMedioEntregaInvalido
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateClasificacion(ctx, id, req.ClasificacionGarantia, req.FolioSAI, req.MedioEntrega); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func contains(arr []string, s string) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}
