package repository

import (
	"context"

	"garantias-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Catálogos de consulta (productos, usuarios, clientes, tickets). Solo
// lectura desde este servicio; otros sistemas los alimentan.
type MongoCatalogoRepository struct {
	productos *mongo.Collection
	usuarios  *mongo.Collection
	clientes  *mongo.Collection
	tickets   *mongo.Collection
}

func NewMongoCatalogoRepository(db *mongo.Database) *MongoCatalogoRepository {
	return &MongoCatalogoRepository{
		productos: db.Collection("productos"),
		usuarios:  db.Collection("usuarios"),
		clientes:  db.Collection("clientes"),
		tickets:   db.Collection("tickets"),
	}
}

func pageOpts(start, end int, sortField string) *options.FindOptions {
	opts := options.Find().SetSort(bson.M{sortField: 1})
	if end > start {
		opts.SetSkip(int64(start)).SetLimit(int64(end - start))
	}
	return opts
}

func regexOr(q string, fields ...string) bson.M {
	if q == "" {
		return bson.M{}
	}
	or := bson.A{}
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": q, "$options": "i"}})
	}
	return bson.M{"$or": or}
}

func (m *MongoCatalogoRepository) BuscarProductos(ctx context.Context, q string, start, end int) ([]model.Producto, int64, error) {
	filter := regexOr(q, "clave_prod", "desc_prod")
	total, err := m.productos.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := m.productos.Find(ctx, filter, pageOpts(start, end, "clave_prod"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []model.Producto
	for cur.Next(ctx) {
		var v model.Producto
		if err := cur.Decode(&v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, nil
}

// BuscarProductosPorClaves resuelve la lista de refacciones sugeridas de una
// máquina en una sola consulta, en lugar de una petición por clave como
// hacía el cliente original.
func (m *MongoCatalogoRepository) BuscarProductosPorClaves(ctx context.Context, claves []string) ([]model.Producto, error) {
	if len(claves) == 0 {
		return nil, nil
	}

	cur, err := m.productos.Find(ctx,
		bson.M{"clave_prod": bson.M{"$in": claves}},
		options.Find().SetSort(bson.M{"clave_prod": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Producto
	for cur.Next(ctx) {
		var v model.Producto
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *MongoCatalogoRepository) BuscarUsuarios(ctx context.Context, q string, start, end int) ([]model.Usuario, int64, error) {
	filter := regexOr(q, "nombre", "email")
	total, err := m.usuarios.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := m.usuarios.Find(ctx, filter, pageOpts(start, end, "nombre"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []model.Usuario
	for cur.Next(ctx) {
		var v model.Usuario
		if err := cur.Decode(&v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, nil
}

// FindUsuarioByEmail resuelve el rol local de un usuario autenticado.
func (m *MongoCatalogoRepository) FindUsuarioByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var res model.Usuario
	err := m.usuarios.FindOne(ctx, bson.M{"email": email}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoCatalogoRepository) BuscarClientes(ctx context.Context, q string, start, end int) ([]model.Cliente, int64, error) {
	filter := regexOr(q, "razon_social")
	total, err := m.clientes.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := m.clientes.Find(ctx, filter, pageOpts(start, end, "razon_social"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []model.Cliente
	for cur.Next(ctx) {
		var v model.Cliente
		if err := cur.Decode(&v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, nil
}

func (m *MongoCatalogoRepository) BuscarTickets(ctx context.Context, q string, start, end int) ([]model.Ticket, int64, error) {
	filter := regexOr(q, "numero", "asunto", "cliente_nombre")
	total, err := m.tickets.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := m.tickets.Find(ctx, filter, pageOpts(start, end, "numero"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []model.Ticket
	for cur.Next(ctx) {
		var v model.Ticket
		if err := cur.Decode(&v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, nil
}
