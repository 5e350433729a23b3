package event

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.GetEvents)
	rg.GET("/organizations/:id/events", h.GetOrganizationEvents)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.CreateEvent)
	rg.POST("/events/images", h.UploadImage)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.CreateEvent(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func (h *Handler) UploadImage(c *gin.Context) {
	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	url, err := h.service.UploadEventImage(c.Request.Context(), c.GetInt64("user_id"), req.Image)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

func (h *Handler) GetEvents(c *gin.Context) {
	events, err := h.service.GetEvents(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}

func (h *Handler) GetOrganizationEvents(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid organization ID")
		return
	}
	events, err := h.service.GetOrganizationEvents(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}
