package repository

import (
	"context"
	"errors"
	"time"

	"garantias-service/internal/model"
	"garantias-service/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("solicitud no encontrada")

// Mongo implementation
type MongoSolicitudRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

var _ service.SolicitudRepository = (*MongoSolicitudRepository)(nil)

func NewMongoSolicitudRepository(db *mongo.Database) *MongoSolicitudRepository {
	return &MongoSolicitudRepository{
		col:      db.Collection("solicitudes"),
		counters: db.Collection("counters"),
	}
}

// NextID consume el contador secuencial de solicitudes. Los ids son enteros
// crecientes como en el backend original, no ObjectIDs.
func (m *MongoSolicitudRepository) NextID(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := m.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "solicitudes"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (m *MongoSolicitudRepository) Save(ctx context.Context, s *model.Solicitud) error {
	now := time.Now().UTC()
	if s.CreadoEn.IsZero() {
		s.CreadoEn = now
	}
	s.ActualizadoEn = now

	filter := bson.M{"solicitud_id": s.ID}
	update := bson.M{"$set": s}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoSolicitudRepository) FindByID(ctx context.Context, id int) (*model.Solicitud, error) {
	var res model.Solicitud
	err := m.col.FindOne(ctx, bson.M{"solicitud_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoSolicitudRepository) FindByItemID(ctx context.Context, itemID string) (*model.Solicitud, error) {
	var res model.Solicitud
	err := m.col.FindOne(ctx, bson.M{"items.item_id": itemID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// Find aplica el filtro de la lista: texto libre sobre ticket/cliente/id y
// candado por email del solicitante. Regresa también el total sin paginar
// para el encabezado X-Total-Count.
func (m *MongoSolicitudRepository) Find(ctx context.Context, f service.ListFilter) ([]*model.Solicitud, int64, error) {
	filter := bson.M{}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.Q != "" {
		filter["$or"] = bson.A{
			bson.M{"ticket_numero": bson.M{"$regex": f.Q, "$options": "i"}},
			bson.M{"cliente_nombre": bson.M{"$regex": f.Q, "$options": "i"}},
			bson.M{"estado_code": f.Q},
		}
	}

	total, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSort(bson.M{"creado_en": -1})
	if f.End > f.Start {
		findOpts.SetSkip(int64(f.Start)).SetLimit(int64(f.End - f.Start))
	}

	cur, err := m.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*model.Solicitud
	for cur.Next(ctx) {
		var v model.Solicitud
		if err := cur.Decode(&v); err != nil {
			return nil, 0, err
		}
		out = append(out, &v)
	}
	return out, total, nil
}

func (m *MongoSolicitudRepository) UpdateEstado(ctx context.Context, id int, estado string, entry model.Bitacora) error {
	filter := bson.M{"solicitud_id": id}
	update := bson.M{
		"$set": bson.M{
			"estado_code":    estado,
			"actualizado_en": time.Now().UTC(),
		},
		"$push": bson.M{
			"bitacora": entry,
		},
	}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoSolicitudRepository) UpdateClasificacion(ctx context.Context, id int, clasificacion, folioSAI, medioEntrega string) error {
	set := bson.M{
		"clasificacion_garantia": clasificacion,
		"actualizado_en":         time.Now().UTC(),
	}
	if folioSAI != "" {
		set["folio_sai"] = folioSAI
	}
	if medioEntrega != "" {
		set["medio_entrega"] = medioEntrega
	}

	r, err := m.col.UpdateOne(ctx, bson.M{"solicitud_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoSolicitudRepository) AddItem(ctx context.Context, id int, item model.Item) error {
	update := bson.M{
		"$push": bson.M{"items": item},
		"$set":  bson.M{"actualizado_en": time.Now().UTC()},
	}
	r, err := m.col.UpdateOne(ctx, bson.M{"solicitud_id": id}, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Los campos de item se actualizan uno por uno con el operador posicional,
// igual que hacía el backend original con sus PUT por campo.
func (m *MongoSolicitudRepository) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	return m.updateItemField(ctx, bson.M{"items.item_id": itemID}, bson.M{"items.$.status": status})
}

func (m *MongoSolicitudRepository) UpdateItemCantidad(ctx context.Context, itemID string, cantidad, costoTotal float64) error {
	return m.updateItemField(ctx, bson.M{"items.item_id": itemID}, bson.M{
		"items.$.cantidad":    cantidad,
		"items.$.costo_total": costoTotal,
	})
}

func (m *MongoSolicitudRepository) UpdateItemMotivo(ctx context.Context, id int, itemID, motivo string) error {
	return m.updateItemField(ctx,
		bson.M{"solicitud_id": id, "items.item_id": itemID},
		bson.M{"items.$.motivo": motivo})
}

func (m *MongoSolicitudRepository) UpdateItemDescripcion(ctx context.Context, id int, itemID, descripcion string) error {
	return m.updateItemField(ctx,
		bson.M{"solicitud_id": id, "items.item_id": itemID},
		bson.M{"items.$.descripcion": descripcion})
}

func (m *MongoSolicitudRepository) UpdateItemCosto(ctx context.Context, id int, itemID string, costoUnitario, costoTotal float64) error {
	return m.updateItemField(ctx,
		bson.M{"solicitud_id": id, "items.item_id": itemID},
		bson.M{
			"items.$.costo_unitario": costoUnitario,
			"items.$.costo_total":    costoTotal,
		})
}

func (m *MongoSolicitudRepository) updateItemField(ctx context.Context, filter, set bson.M) error {
	set["actualizado_en"] = time.Now().UTC()
	r, err := m.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
