package httppresentation

import (
	"errors"
	"net/http"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/auth"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/cart"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps business failures onto HTTP statuses. Every failure is
// request-scoped; nothing here ever terminates the process.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, identity.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, apporder.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, user.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, apporder.ErrValidation),
		errors.Is(err, catalog.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrNoPayment),
		errors.Is(err, order.ErrInvalidLine),
		errors.Is(err, user.ErrInvalid):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request_failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
