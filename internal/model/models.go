// models.go
package model

import "time"

type Solicitud struct {
	ID                    int        `bson:"solicitud_id" json:"id"`
	EstadoCode            string     `bson:"estado_code" json:"estado_code"` // estado actual del ciclo de vida
	Email                 string     `bson:"email" json:"email"`
	UsuarioID             int        `bson:"usuario_id" json:"usuario_id"` // responsable interno
	ClienteNombre         string     `bson:"cliente_nombre" json:"cliente_nombre"`
	TicketNumero          string     `bson:"ticket_numero" json:"ticket_numero"`
	TicketIDExterno       string     `bson:"ticket_id_externo" json:"ticket_id_externo"` // id del ticket en Zoho
	PrioridadID           int        `bson:"prioridad_id" json:"prioridad_id"`
	TipoGarantiaID        int        `bson:"tipo_garantia_id" json:"tipo_garantia_id"`
	GestionGarantiaID     int        `bson:"gestion_garantia_id" json:"gestion_garantia_id"`
	Observaciones         string     `bson:"observaciones" json:"observaciones"`
	ClasificacionGarantia string     `bson:"clasificacion_garantia" json:"clasificacion_garantia"` // se fija al aprobar
	FolioSAI              string     `bson:"folio_sai" json:"folio_sai"`
	MedioEntrega          string     `bson:"medio_entrega" json:"medio_entrega"`
	Items                 []Item     `bson:"items" json:"items"`
	Bitacora              []Bitacora `bson:"bitacora" json:"bitacora"`
	CreadoEn              time.Time  `bson:"creado_en" json:"creado_en"`
	ActualizadoEn         time.Time  `bson:"actualizado_en" json:"actualizado_en"`
}

type Item struct {
	ID             string  `bson:"item_id" json:"id"`
	ProductoID     string  `bson:"producto_id" json:"producto_id"`
	NumeroParte    string  `bson:"numero_parte" json:"numero_parte"`
	Descripcion    string  `bson:"descripcion" json:"descripcion"`
	Cantidad       float64 `bson:"cantidad" json:"cantidad"`
	Unidad         string  `bson:"unidad" json:"unidad"`
	PrecioUnitario float64 `bson:"precio_unitario" json:"precio_unitario"`
	CostoUnitario  float64 `bson:"costo_unitario" json:"costo_unitario"`
	MonedaPrecio   string  `bson:"moneda_precio" json:"moneda_precio"`
	MonedaCosto    string  `bson:"moneda_costo" json:"moneda_costo"`
	CostoTotal     float64 `bson:"costo_total" json:"costo_total"` // cantidad * costo_unitario

	// Seguimiento de la pieza, independiente del estado de la solicitud
	Status      string `bson:"status" json:"status"`
	Motivo      string `bson:"motivo" json:"motivo"`
	Comentarios string `bson:"comentarios" json:"comentarios"`
}

// Bitacora es un movimiento de la solicitud. Solo se agrega, nunca se edita.
type Bitacora struct {
	ID     string    `bson:"bitacora_id" json:"id"`
	TS     time.Time `bson:"ts" json:"ts"`
	Accion string    `bson:"accion" json:"accion"`
	De     string    `bson:"de,omitempty" json:"de,omitempty"`
	A      string    `bson:"a,omitempty" json:"a,omitempty"`
	Nota   string    `bson:"nota,omitempty" json:"nota,omitempty"`
	Actor  string    `bson:"actor,omitempty" json:"actor,omitempty"`
}

// Producto es una pieza del catálogo; al agregarse a una solicitud
// sus campos se copian al Item (no queda referencia viva).
type Producto struct {
	ID            string  `bson:"producto_id" json:"id"`
	ClaveProd     string  `bson:"clave_prod" json:"clave_prod"`
	DescProd      string  `bson:"desc_prod" json:"desc_prod"`
	UniMed        string  `bson:"uni_med" json:"uni_med"`
	PrecioVenta   float64 `bson:"precio_venta" json:"precio_venta"`
	CostoEntrante float64 `bson:"costo_entrante" json:"costo_entrante"`
	MonedaPrecio  string  `bson:"moneda_precio" json:"moneda_precio"`
	MonedaCosto   string  `bson:"moneda_costo" json:"moneda_costo"`
	LinkImg       string  `bson:"link_img" json:"link_img"`
}

type Usuario struct {
	ID     int    `bson:"usuario_id" json:"id"`
	Nombre string `bson:"nombre" json:"nombre"`
	Email  string `bson:"email" json:"email"`
	Role   string `bson:"role" json:"role"`
}

type Cliente struct {
	ID          int    `bson:"cliente_id" json:"id"`
	RazonSocial string `bson:"razon_social" json:"razon_social"`
}

type Ticket struct {
	ID            int    `bson:"ticket_id" json:"id"`
	Numero        string `bson:"numero" json:"numero"`
	Asunto        string `bson:"asunto" json:"asunto"`
	ZohoID        string `bson:"zoho_id" json:"zoho_id"`
	ClienteNombre string `bson:"cliente_nombre" json:"cliente_nombre"`
}
