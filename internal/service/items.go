package service

import (
	"context"
	"math"
	"strings"

	"garantias-service/internal/dto"
	"garantias-service/internal/model"
	"garantias-service/internal/moneda"

	"github.com/google/uuid"
)

// PasoCantidad regresa el incremento mínimo de cantidad según la unidad:
// 0.5 para horas, 1 para todo lo demás. El mínimo válido es un paso.
func PasoCantidad(unidad string) float64 {
	if strings.EqualFold(strings.TrimSpace(unidad), "HORA") {
		return 0.5
	}
	return 1
}

func CantidadValida(cantidad float64, unidad string) bool {
	if math.IsNaN(cantidad) || math.IsInf(cantidad, 0) {
		return false
	}
	return cantidad >= PasoCantidad(unidad)
}

// AgregarItem copia los campos del producto a la solicitud. El candado por
// rol vive aquí y no solo en la vista: un solicitante solo puede agregar
// mientras la solicitud sigue en CREADA; el área de garantías mientras no
// esté en un estado final.
func (s *SolicitudService) AgregarItem(ctx context.Context, id int, req dto.AddItemRequest, rol string) (*model.Solicitud, error) {
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rol == RolSolicitante {
		if sol.EstadoCode != EstadoCreada {
			return nil, ErrItemsBloqueados
		}
	} else if estadosFinales[sol.EstadoCode] {
		return nil, ErrItemsBloqueados
	}

	if !CantidadValida(req.Cantidad, req.Unidad) {
		return nil, ErrCantidadInvalida
	}

	item := model.Item{
		ID:             uuid.NewString(),
		ProductoID:     req.ProductoID,
		NumeroParte:    req.NumeroParte,
		Descripcion:    req.Descripcion,
		Cantidad:       req.Cantidad,
		Unidad:         req.Unidad,
		PrecioUnitario: req.PrecioUnitario,
		CostoUnitario:  req.CostoUnitario,
		MonedaPrecio:   req.MonedaPrecio,
		MonedaCosto:    req.MonedaCosto,
		CostoTotal:     moneda.Total(req.Cantidad, req.CostoUnitario),
		Status:         req.Status,
		Motivo:         req.Motivo,
		Comentarios:    req.Comentarios,
	}
	if item.MonedaPrecio == "" {
		item.MonedaPrecio = "1"
	}
	if item.MonedaCosto == "" {
		item.MonedaCosto = "1"
	}
	if item.Status == "" {
		item.Status = ItemStatusInicial
	}
	if item.Motivo == "" {
		item.Motivo = ItemMotivoInicial
	}

	if err := s.repo.AddItem(ctx, id, item); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// CambiarStatusItem actualiza solo el seguimiento de la pieza; nunca toca el
// estado de la solicitud.
func (s *SolicitudService) CambiarStatusItem(ctx context.Context, itemID, status string) error {
	if !contains(ItemStatusOptions, status) {
		return ErrStatusItemInvalido
	}
	if _, err := s.repo.FindByItemID(ctx, itemID); err != nil {
		return err
	}
	return s.repo.UpdateItemStatus(ctx, itemID, status)
}

func (s *SolicitudService) CambiarCantidadItem(ctx context.Context, itemID string, cantidad float64) error {
	sol, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	item := buscarItem(sol, itemID)
	if item == nil {
		return ErrItemNoEncontrado
	}
	if !CantidadValida(cantidad, item.Unidad) {
		return ErrCantidadInvalida
	}
	return s.repo.UpdateItemCantidad(ctx, itemID, cantidad, moneda.Total(cantidad, item.CostoUnitario))
}

func (s *SolicitudService) CambiarMotivoItem(ctx context.Context, id int, itemID, motivo string) error {
	if !contains(MotivoGarantiaOptions, motivo) {
		return ErrMotivoInvalido
	}
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if buscarItem(sol, itemID) == nil {
		return ErrItemNoEncontrado
	}
	return s.repo.UpdateItemMotivo(ctx, id, itemID, motivo)
}

func (s *SolicitudService) CambiarDescripcionItem(ctx context.Context, id int, itemID, descripcion string) error {
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	item := buscarItem(sol, itemID)
	if item == nil {
		return ErrItemNoEncontrado
	}
	if !EsParteEditable(item.NumeroParte) {
		return ErrItemNoEditable
	}
	return s.repo.UpdateItemDescripcion(ctx, id, itemID, descripcion)
}

func (s *SolicitudService) CambiarCostoItem(ctx context.Context, id int, itemID string, costoUnitario float64) error {
	if costoUnitario < 0 {
		return ErrCantidadInvalida
	}
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	item := buscarItem(sol, itemID)
	if item == nil {
		return ErrItemNoEncontrado
	}
	if !EsParteEditable(item.NumeroParte) {
		return ErrItemNoEditable
	}
	return s.repo.UpdateItemCosto(ctx, id, itemID, costoUnitario, moneda.Total(item.Cantidad, costoUnitario))
}

func buscarItem(sol *model.Solicitud, itemID string) *model.Item {
	for i := range sol.Items {
		if sol.Items[i].ID == itemID {
			return &sol.Items[i]
		}
	}
	return nil
}
