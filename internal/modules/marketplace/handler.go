package marketplace

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
	rg.GET("/marketplace", h.GetListings)
	rg.GET("/marketplace/:id", h.GetListing)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/marketplace", h.ListItem)
	rg.POST("/marketplace/images", h.UploadImages)
}

func (h *Handler) ListItem(c *gin.Context) {
	var req ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.ListItem(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func (h *Handler) UploadImages(c *gin.Context) {
	var req UploadImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.UploadImages(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) GetListings(c *gin.Context) {
	items, err := h.service.GetListings(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid item ID")
		return
	}
	item, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}
