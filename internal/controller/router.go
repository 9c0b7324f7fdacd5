package controller

import (
	"github.com/gin-gonic/gin"

	"garantias-service/internal/middleware"
)

// RegisterRoutes monta la API completa. Todo requiere sesión; las mutaciones
// del ciclo de vida y de campos de item quedan detrás del grupo de garantías.
func RegisterRoutes(r *gin.Engine, sc *SolicitudController, cc *CatalogoController, auth gin.HandlerFunc) {
	authed := r.Group("/")
	authed.Use(auth)

	authed.GET("/auth/me", sc.GetMe)

	// Lista, alta y detalle: cualquier rol autenticado. El alcance por rol
	// (correo propio, acciones visibles, candado de items) se decide adentro.
	authed.GET("/solicitudes", sc.ListSolicitudes)
	authed.POST("/solicitudes", sc.CreateSolicitud)
	authed.GET("/solicitudes/:id", sc.GetSolicitud)
	authed.POST("/solicitudes/:id/items", sc.AddItem)

	// Catálogos de consulta
	cat := authed.Group("/catalogo")
	cat.GET("/productos", cc.BuscarProductos)
	cat.GET("/usuarios", cc.BuscarUsuarios)
	cat.GET("/clientes", cc.BuscarClientes)
	cat.GET("/tickets", cc.BuscarTickets)
	cat.GET("/maquinas", cc.ListMaquinas)
	cat.GET("/maquinas/:clave/piezas", cc.PiezasDeMaquina)

	// Solo área de garantías
	gar := authed.Group("/")
	gar.Use(middleware.SoloGarantias())
	gar.PUT("/solicitudes/:id", sc.SetClasificacion)
	gar.POST("/solicitudes/:id/estado", sc.CambiarEstado)
	gar.POST("/solicitudes/items/:itemId/estado", sc.CambiarEstadoItem)
	gar.PUT("/solicitudes/motivo_item/:id/items/:itemId", sc.CambiarMotivoItem)
	gar.PUT("/solicitudes/descripcion_item/:id/items/:itemId", sc.CambiarDescripcionItem)
	gar.PUT("/solicitudes/costo_item/:id/items/:itemId", sc.CambiarCostoItem)
}
