package organization

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/organizations", h.GetOrganizations)
	rg.GET("/organizations/:id", h.GetOrganization)
	rg.GET("/organizations/:id/members", h.GetOrganizationMembers)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/organizations", h.CreateOrganization)
	rg.POST("/organizations/:id/join", h.JoinOrganization)
	rg.POST("/organizations/:id/approve", h.ApproveOrganization)
	rg.POST("/organizations/:id/members/approve", h.ApproveMember)

	rg.GET("/me/organizations", h.GetMyOrganizations)
	rg.GET("/me/event-eligibility", h.CanCreateEvents)
	rg.GET("/me/pending-members", h.GetPendingMembers)

	rg.GET("/admin/organizations/pending", h.GetPendingOrganizations)
}

func (h *Handler) GetOrganizations(c *gin.Context) {
	var (
		orgs []domain.Organization
		err  error
	)
	if t := c.Query("type"); t != "" {
		orgs, err = h.service.GetOrganizationsByType(c.Request.Context(), domain.OrganizationType(t))
	} else {
		orgs, err = h.service.GetOrganizations(c.Request.Context())
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orgs)
}

func (h *Handler) GetOrganization(c *gin.Context) {
	id, ok := orgIDParam(c)
	if !ok {
		return
	}
	org, err := h.service.GetOrganization(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, org)
}

func (h *Handler) GetOrganizationMembers(c *gin.Context) {
	id, ok := orgIDParam(c)
	if !ok {
		return
	}
	members, err := h.service.GetOrganizationMembers(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

func (h *Handler) CreateOrganization(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid request body")
		return
	}
	out, err := h.service.CreateOrganization(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func (h *Handler) JoinOrganization(c *gin.Context) {
	id, ok := orgIDParam(c)
	if !ok {
		return
	}
	out, err := h.service.JoinOrganization(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusCreated, out)
}

func (h *Handler) ApproveOrganization(c *gin.Context) {
	id, ok := orgIDParam(c)
	if !ok {
		return
	}
	out, err := h.service.ApproveOrganization(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, out)
}

func (h *Handler) ApproveMember(c *gin.Context) {
	id, ok := orgIDParam(c)
	if !ok {
		return
	}
	var req ApproveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "user_id is required")
		return
	}
	out, err := h.service.ApproveOrganizationMember(c.Request.Context(), req.UserID, id, c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, out)
}

func (h *Handler) GetMyOrganizations(c *gin.Context) {
	list, err := h.service.GetUserOrganizations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CanCreateEvents(c *gin.Context) {
	res, err := h.service.CanUserCreateEvents(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetPendingMembers(c *gin.Context) {
	list, err := h.service.GetPendingMembersForAdmin(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetPendingOrganizations(c *gin.Context) {
	list, err := h.service.GetPendingOrganizations(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func orgIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION", "Invalid organization ID")
		return 0, false
	}
	return id, true
}
