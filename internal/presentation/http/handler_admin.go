package httppresentation

import (
	"net/http"
	"strconv"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/admin"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *admin.Service
}

func NewAdminHandler(service *admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) SalesByCategory(c *gin.Context) {
	rows, err := h.service.SalesByCategory(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.service.TopProducts(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) SalesByPayment(c *gin.Context) {
	rows, err := h.service.SalesByPayment(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
