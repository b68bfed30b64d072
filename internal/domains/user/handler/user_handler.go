package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho accounts + own profile
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// validatable là DTO có Validate()
type validatable interface {
	Validate() error
}

// bindAndValidate: STEP 1 bind JSON, STEP 2 validate; tự ghi response khi lỗi
func bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return false
	}
	return true
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+userDTO.ID.String())
	response.Success(c, http.StatusCreated, userDTO)
}

// Login POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// RefreshToken POST /auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ========================================
// OWN ACCOUNT
// ========================================

// GetMe GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.service.GetMe(c.Request.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

// UpdateProfile PUT /users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.ViewerFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UpdateEmail PUT /users/me/email
func (h *UserHandler) UpdateEmail(c *gin.Context) {
	var req user.UpdateEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.UpdateEmail(c.Request.Context(), middleware.ViewerFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto)
}
