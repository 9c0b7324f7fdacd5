// garantias_only.go
package middleware

import (
	"net/http"

	"garantias-service/internal/service"

	"github.com/gin-gonic/gin"
)

// SoloGarantias deja pasar únicamente al área de garantías (garantias/admin).
// Un rol autenticado fuera del conjunto recibe 403, no 401.
func SoloGarantias() gin.HandlerFunc {
	return func(c *gin.Context) {
		rol := c.GetString("userRole")
		if !service.EsAreaGarantias(rol) {
			c.JSON(http.StatusForbidden, gin.H{"error": "acceso denegado"})
			c.Abort()
			return
		}
		c.Next()
	}
}
