package controller

import (
	"net/http"
	"strconv"

	"garantias-service/internal/catalogo"
	"garantias-service/internal/repository"

	"github.com/gin-gonic/gin"
)

type CatalogoController struct {
	Repo *repository.MongoCatalogoRepository
}

func NewCatalogoController(repo *repository.MongoCatalogoRepository) *CatalogoController {
	return &CatalogoController{Repo: repo}
}

// GET /catalogo/productos?q&_start&_end
func (ctl *CatalogoController) BuscarProductos(c *gin.Context) {
	q := c.Query("q")
	start := atoiDefault(c.Query("_start"), 0)
	end := atoiDefault(c.Query("_end"), 10)

	rows, total, err := ctl.Repo.BuscarProductos(c.Request.Context(), q, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, rows)
}

// GET /catalogo/usuarios
func (ctl *CatalogoController) BuscarUsuarios(c *gin.Context) {
	q := c.Query("q")
	start := atoiDefault(c.Query("_start"), 0)
	end := atoiDefault(c.Query("_end"), 20)

	rows, total, err := ctl.Repo.BuscarUsuarios(c.Request.Context(), q, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, rows)
}

// GET /catalogo/clientes
func (ctl *CatalogoController) BuscarClientes(c *gin.Context) {
	q := c.Query("q")
	start := atoiDefault(c.Query("_start"), 0)
	end := atoiDefault(c.Query("_end"), 20)

	rows, total, err := ctl.Repo.BuscarClientes(c.Request.Context(), q, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, rows)
}

// GET /catalogo/tickets
func (ctl *CatalogoController) BuscarTickets(c *gin.Context) {
	q := c.Query("q")
	start := atoiDefault(c.Query("_start"), 0)
	end := atoiDefault(c.Query("_end"), 20)

	rows, total, err := ctl.Repo.BuscarTickets(c.Request.Context(), q, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, rows)
}

// GET /catalogo/maquinas
func (ctl *CatalogoController) ListMaquinas(c *gin.Context) {
	c.JSON(http.StatusOK, catalogo.Maquinas())
}

// GET /catalogo/maquinas/:clave/piezas — productos sugeridos de la máquina,
// resueltos en una sola consulta.
func (ctl *CatalogoController) PiezasDeMaquina(c *gin.Context) {
	clave := c.Param("clave")
	claves, ok := catalogo.Piezas(clave)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "máquina no encontrada"})
		return
	}

	rows, err := ctl.Repo.BuscarProductosPorClaves(c.Request.Context(), claves)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
