package notification

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
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.GET("/unread-count", h.GetUnreadCount)
		g.PATCH("/:id/read", h.MarkRead)
		g.PATCH("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) GetNotifications(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	list, err := h.service.GetNotifications(c.Request.Context(), userID, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// The count is a convenience for the badge; a failure here is not fatal.
	unread, err := h.service.GetUnreadNotificationCount(c.Request.Context(), userID)
	if err != nil {
		unread = 0
	}

	response.Success(c, http.StatusOK, ListResponse{Notifications: list, UnreadCount: unread})
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	count, err := h.service.GetUnreadNotificationCount(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid notification ID")
		return
	}

	var req MarkReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
			return
		}
	}
	isRead := true
	if req.IsRead != nil {
		isRead = *req.IsRead
	}

	n, err := h.service.MarkNotificationRead(c.Request.Context(), id, c.GetInt64("user_id"), isRead)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, n)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}
