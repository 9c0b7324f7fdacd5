// setup.go
package rabbit

import (
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"garantias-service/internal/service"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.SolicitudService, log zerolog.Logger) {
	consumer := NewTicketEscaladoConsumer(svc, log)

	// 1. Declarar la queue
	q, err := ch.QueueDeclare(
		"garantias_service_tickets", // cola exclusiva de este micro
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Error().Err(err).Msg("error declarando queue")
		return
	}

	// 2. Bindear al exchange fanout
	err = ch.QueueBind(
		q.Name,
		"",                // fanout ignora routing key
		"ticket_escalado", // lo publica la mesa de soporte
		false,
		nil,
	)
	if err != nil {
		log.Error().Err(err).Msg("error binding exchange")
		return
	}

	// 3. Consumir
	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Error().Err(err).Msg("error al consumir queue")
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Info().Msg("suscrito a exchange ticket_escalado (fanout)")
}
