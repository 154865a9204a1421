package httppresentation

import (
	"net/http"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/interest"
	"github.com/gin-gonic/gin"
)

type InterestHandler struct {
	service *interest.Service
}

func NewInterestHandler(service *interest.Service) *InterestHandler {
	return &InterestHandler{service: service}
}

func (h *InterestHandler) Track(c *gin.Context) {
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	actor := identity.ActorFromContext(c.Request.Context())
	if err := h.service.Track(c.Request.Context(), actor, productID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InterestHandler) Recommended(c *gin.Context) {
	actor := identity.ActorFromContext(c.Request.Context())
	products, err := h.service.Recommended(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
