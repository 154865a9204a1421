package httppresentation

import (
	"net/http"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/cart"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service *cart.Service
}

func NewCartHandler(service *cart.Service) *CartHandler {
	return &CartHandler{service: service}
}

type cartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

func (h *CartHandler) Get(c *gin.Context) {
	actor := identity.ActorFromContext(c.Request.Context())
	entries, err := h.service.Get(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := identity.ActorFromContext(c.Request.Context())
	entry, err := h.service.Add(c.Request.Context(), actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *CartHandler) Update(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := identity.ActorFromContext(c.Request.Context())
	entry, err := h.service.Update(c.Request.Context(), actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *CartHandler) Remove(c *gin.Context) {
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	actor := identity.ActorFromContext(c.Request.Context())
	if err := h.service.Remove(c.Request.Context(), actor.ID, productID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Clear(c *gin.Context) {
	actor := identity.ActorFromContext(c.Request.Context())
	if err := h.service.Clear(c.Request.Context(), actor.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
