package rabbit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"garantias-service/internal/dto"
	"garantias-service/internal/service"
)

// Cuando la mesa de soporte escala un ticket a garantías, se crea la
// solicitud automáticamente con el mismo camino que usa la API.
type TicketEscaladoConsumer struct {
	Service *service.SolicitudService
	log     zerolog.Logger
}

func NewTicketEscaladoConsumer(s *service.SolicitudService, log zerolog.Logger) *TicketEscaladoConsumer {
	return &TicketEscaladoConsumer{Service: s, log: log}
}

type TicketEscaladoMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		ZohoID        string `json:"zohoId"`
		TicketNumero  string `json:"ticketNumber"`
		ClienteNombre string `json:"accountName"`
		Email         string `json:"requesterEmail"`
		UsuarioID     int    `json:"usuarioId"`
		Observaciones string `json:"subject"`
	} `json:"message"`
}

func (c *TicketEscaladoConsumer) Handle(msg []byte) error {
	c.log.Info().Msg("evento recibido: ticket_escalado")

	var event TicketEscaladoMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		c.log.Error().Err(err).Msg("error parseando mensaje")
		return err
	}

	// Responsable por defecto del área si el evento no trae uno.
	usuarioID := event.Message.UsuarioID
	if usuarioID == 0 {
		usuarioID = 3
	}

	sol, err := c.Service.Crear(context.Background(), dto.CreateSolicitudRequest{
		Email:           event.Message.Email,
		UsuarioID:       usuarioID,
		TicketNumero:    event.Message.TicketNumero,
		ClienteNombre:   event.Message.ClienteNombre,
		TicketIDExterno: event.Message.ZohoID,
		Observaciones:   event.Message.Observaciones,
	})
	if err != nil {
		c.log.Error().Err(err).Str("zoho_id", event.Message.ZohoID).Msg("error creando solicitud desde ticket")
		return err
	}

	c.log.Info().Int("solicitud_id", sol.ID).Str("ticket", sol.TicketNumero).Msg("solicitud creada desde ticket escalado")
	return nil
}
