// Package zoho habla con el sistema externo de tickets. Todo lo que sale de
// aquí es best-effort: el ciclo de vida de la solicitud nunca depende de que
// Zoho conteste.
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"garantias-service/internal/model"

	"github.com/rs/zerolog"
)

type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

type commentRequest struct {
	Message  string `json:"message"`
	IsPublic bool   `json:"isPublic"`
}

// AddComment publica un comentario en el ticket. El contenido es HTML.
func (c *Client) AddComment(ctx context.Context, ticketID, message string, isPublic bool) error {
	body, err := json.Marshal(commentRequest{Message: message, IsPublic: isPublic})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/ticket/%s/comment", c.baseURL, ticketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("zoho request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("zoho respondió %d", resp.StatusCode)
	}
	return nil
}

// NotificarEntrega arma el resumen de entrega y lo comenta como público en
// el ticket externo de la solicitud. Implementa service.EntregaNotifier.
func (c *Client) NotificarEntrega(ctx context.Context, s *model.Solicitud) error {
	html := BuildEntregaHTML(s)
	if err := c.AddComment(ctx, s.TicketIDExterno, html, true); err != nil {
		return err
	}
	c.log.Info().
		Int("solicitud_id", s.ID).
		Str("ticket_id_externo", s.TicketIDExterno).
		Msg("comentario de entrega publicado en Zoho")
	return nil
}
