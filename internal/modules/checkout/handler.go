package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tigerlife/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/checkout")
	{
		g.POST("/intent", h.StartPurchase)
		g.POST("/confirm", h.ConfirmPurchase)
	}
}

func (h *Handler) StartPurchase(c *gin.Context) {
	var req StartPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	intent, err := h.service.StartPurchase(c.Request.Context(), c.GetInt64("user_id"), req.ItemID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}

func (h *Handler) ConfirmPurchase(c *gin.Context) {
	var req ConfirmPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.ConfirmPurchase(c.Request.Context(), c.GetInt64("user_id"), req.ItemID, req.PaymentIntentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, out)
}
