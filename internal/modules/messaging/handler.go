package messaging

import (
	"net/http"
	"strconv"

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
	g := protected.Group("/messages")
	{
		g.POST("", h.SendMessage)
		g.GET("/conversations", h.GetConversations)
		g.GET("/with/:userId", h.GetMessages)
	}
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.SendMessage(c.Request.Context(), c.GetInt64("user_id"), req.ReceiverID, req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func (h *Handler) GetMessages(c *gin.Context) {
	other, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || other <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid user ID")
		return
	}
	list, err := h.service.GetMessages(c.Request.Context(), c.GetInt64("user_id"), other)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetConversations(c *gin.Context) {
	list, err := h.service.GetConversations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}
