package services

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
	rg.GET("/services", h.GetServices)
	rg.GET("/services/:id", h.GetService)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/services", h.ListService)
	rg.POST("/services/:id/book", h.BookService)
}

func (h *Handler) ListService(c *gin.Context) {
	var req ListServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.ListService(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func (h *Handler) GetServices(c *gin.Context) {
	list, err := h.service.GetServices(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := serviceIDParam(c)
	if !ok {
		return
	}
	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) BookService(c *gin.Context) {
	id, ok := serviceIDParam(c)
	if !ok {
		return
	}
	var req BookServiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
			return
		}
	}
	out, err := h.service.BookService(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func serviceIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid service ID")
		return 0, false
	}
	return id, true
}
