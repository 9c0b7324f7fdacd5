// Package testutil provee dobles en memoria para probar el servicio sin
// MongoDB ni Zoho reales.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"garantias-service/internal/model"
	"garantias-service/internal/repository"
	"garantias-service/internal/service"
)

// FakeSolicitudRepo implementa service.SolicitudRepository sobre un mapa.
type FakeSolicitudRepo struct {
	mu   sync.Mutex
	seq  int
	docs map[int]*model.Solicitud

	// Contadores para asertar qué se escribió.
	UpdateEstadoCalls int
}

var _ service.SolicitudRepository = (*FakeSolicitudRepo)(nil)

func NewFakeSolicitudRepo() *FakeSolicitudRepo {
	return &FakeSolicitudRepo{docs: map[int]*model.Solicitud{}}
}

// Seed mete una solicitud tal cual, sin pasar por el servicio.
func (f *FakeSolicitudRepo) Seed(s *model.Solicitud) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := clone(s)
	f.docs[cp.ID] = cp
	if cp.ID > f.seq {
		f.seq = cp.ID
	}
}

func (f *FakeSolicitudRepo) NextID(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return f.seq, nil
}

func (f *FakeSolicitudRepo) Save(ctx context.Context, s *model.Solicitud) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[s.ID] = clone(s)
	return nil
}

func (f *FakeSolicitudRepo) FindByID(ctx context.Context, id int) (*model.Solicitud, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(s), nil
}

func (f *FakeSolicitudRepo) FindByItemID(ctx context.Context, itemID string) (*model.Solicitud, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.docs {
		for _, it := range s.Items {
			if it.ID == itemID {
				return clone(s), nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeSolicitudRepo) Find(ctx context.Context, fl service.ListFilter) ([]*model.Solicitud, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []*model.Solicitud
	for _, s := range f.docs {
		if fl.Email != "" && s.Email != fl.Email {
			continue
		}
		if fl.Q != "" &&
			!strings.Contains(strings.ToLower(s.TicketNumero), strings.ToLower(fl.Q)) &&
			!strings.Contains(strings.ToLower(s.ClienteNombre), strings.ToLower(fl.Q)) {
			continue
		}
		all = append(all, clone(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if fl.End > fl.Start {
		if fl.Start < len(all) {
			end := fl.End
			if end > len(all) {
				end = len(all)
			}
			all = all[fl.Start:end]
		} else {
			all = nil
		}
	}
	return all, total, nil
}

func (f *FakeSolicitudRepo) UpdateEstado(ctx context.Context, id int, estado string, entry model.Bitacora) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.UpdateEstadoCalls++
	s.EstadoCode = estado
	s.Bitacora = append(s.Bitacora, entry)
	return nil
}

func (f *FakeSolicitudRepo) UpdateClasificacion(ctx context.Context, id int, clasificacion, folioSAI, medioEntrega string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.ClasificacionGarantia = clasificacion
	if folioSAI != "" {
		s.FolioSAI = folioSAI
	}
	if medioEntrega != "" {
		s.MedioEntrega = medioEntrega
	}
	return nil
}

func (f *FakeSolicitudRepo) AddItem(ctx context.Context, id int, item model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Items = append(s.Items, item)
	return nil
}

func (f *FakeSolicitudRepo) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	return f.mutateItem("", itemID, func(it *model.Item) { it.Status = status })
}

func (f *FakeSolicitudRepo) UpdateItemCantidad(ctx context.Context, itemID string, cantidad, costoTotal float64) error {
	return f.mutateItem("", itemID, func(it *model.Item) {
		it.Cantidad = cantidad
		it.CostoTotal = costoTotal
	})
}

func (f *FakeSolicitudRepo) UpdateItemMotivo(ctx context.Context, id int, itemID, motivo string) error {
	return f.mutateItem("", itemID, func(it *model.Item) { it.Motivo = motivo })
}

func (f *FakeSolicitudRepo) UpdateItemDescripcion(ctx context.Context, id int, itemID, descripcion string) error {
	return f.mutateItem("", itemID, func(it *model.Item) { it.Descripcion = descripcion })
}

func (f *FakeSolicitudRepo) UpdateItemCosto(ctx context.Context, id int, itemID string, costoUnitario, costoTotal float64) error {
	return f.mutateItem("", itemID, func(it *model.Item) {
		it.CostoUnitario = costoUnitario
		it.CostoTotal = costoTotal
	})
}

func (f *FakeSolicitudRepo) mutateItem(_ string, itemID string, fn func(*model.Item)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.docs {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				fn(&s.Items[i])
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func clone(s *model.Solicitud) *model.Solicitud {
	cp := *s
	cp.Items = append([]model.Item(nil), s.Items...)
	cp.Bitacora = append([]model.Bitacora(nil), s.Bitacora...)
	return &cp
}

// FakeNotifier registra las entregas notificadas y puede fallar a propósito.
type FakeNotifier struct {
	mu       sync.Mutex
	Err      error
	Entregas []int // ids de solicitud notificados
}

var _ service.EntregaNotifier = (*FakeNotifier)(nil)

func (n *FakeNotifier) NotificarEntrega(ctx context.Context, s *model.Solicitud) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Entregas = append(n.Entregas, s.ID)
	return n.Err
}

func (n *FakeNotifier) Llamadas() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Entregas)
}
