package user

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

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUser)
	}

	me := rg.Group("/me")
	{
		me.GET("", h.GetMe)
		me.PATCH("/profile", h.UpdateProfile)
		me.PATCH("/email", h.UpdateEmail)
		me.PATCH("/password", h.UpdatePassword)
		me.PATCH("/settings", h.UpdateSettings)
		me.POST("/mfa", h.EnableMFA)
		me.POST("/verify-id", h.VerifyID)
	}

	rg.POST("/admin/users/:id/make-admin", h.MakeUserAdmin)
}

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.service.GetUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.Summary())
}

func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.GetUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	u, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) UpdateEmail(c *gin.Context) {
	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Email is required")
		return
	}
	u, err := h.service.UpdateEmail(c.Request.Context(), c.GetInt64("user_id"), req.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	if err := h.service.UpdatePassword(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "password_updated"})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Settings are required")
		return
	}
	settings, err := h.service.UpdateSettings(c.Request.Context(), c.GetInt64("user_id"), req.Settings)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

func (h *Handler) EnableMFA(c *gin.Context) {
	setup, err := h.service.EnableMFA(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, setup)
}

func (h *Handler) VerifyID(c *gin.Context) {
	var req VerifyIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Image is required")
		return
	}
	res, err := h.service.VerifyID(c.Request.Context(), c.GetInt64("user_id"), req.Image)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) MakeUserAdmin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.service.MakeUserAdmin(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid user ID")
		return 0, false
	}
	return id, true
}
