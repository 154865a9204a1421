package httppresentation

import (
	"net/http"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *apporder.Service
}

func NewOrderHandler(service *apporder.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type shippingAddressRequest struct {
	Name       string `json:"name" binding:"required"`
	Street     string `json:"street" binding:"required"`
	Avenue     string `json:"avenue"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

type createOrderRequest struct {
	Items           []orderItemRequest      `json:"items" binding:"required"`
	PaymentMethod   string                  `json:"paymentMethod" binding:"required"`
	ShippingAddress *shippingAddressRequest `json:"shippingAddress"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := apporder.PlaceOrderInput{
		Actor:         identity.ActorFromContext(c.Request.Context()),
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		input.Lines = append(input.Lines, apporder.LineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	if req.ShippingAddress != nil {
		input.ShippingAddress = &apporder.AddressInput{
			Name:       req.ShippingAddress.Name,
			Street:     req.ShippingAddress.Street,
			Avenue:     req.ShippingAddress.Avenue,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Phone:      req.ShippingAddress.Phone,
		}
	}

	placed, err := h.service.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, placed)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	actor := identity.ActorFromContext(c.Request.Context())
	o, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	actor := identity.ActorFromContext(c.Request.Context())
	orders, err := h.service.ListByUser(c.Request.Context(), actor, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
