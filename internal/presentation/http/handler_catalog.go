package httppresentation

import (
	"net/http"
	"strconv"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) List(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		products, err := h.service.Search(c.Request.Context(), query)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	products, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
