package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/follow/model"
	"bookjournal-backend/internal/domains/follow/service"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/internal/shared/response"
)

// =====================================================
// FOLLOW HANDLER
// =====================================================

type FollowHandler struct {
	followService service.ServiceInterface
}

func NewFollowHandler(followService service.ServiceInterface) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// =====================================================
// REQUESTS
// =====================================================

// CreateRequest sends a follow request
// POST /api/v1/follow-requests
func (h *FollowHandler) CreateRequest(c *gin.Context) {
	var req model.CreateFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.followService.CreateRequest(
		c.Request.Context(),
		middleware.ViewerFromContext(c),
		uuid.MustParse(req.To),
		req.Message,
	)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ListIncoming lists requests addressed to the viewer
// GET /api/v1/follow-requests?status=outstanding|accepted|declined
func (h *FollowHandler) ListIncoming(c *gin.Context) {
	var q model.ListRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}
	if err := q.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	requests, err := h.followService.ListIncoming(c.Request.Context(), middleware.ViewerFromContext(c), q.StatusOrDefault())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, requests, &response.Meta{Total: len(requests)})
}

// ListSent lists outstanding requests made by the viewer
// GET /api/v1/follow-requests/sent
func (h *FollowHandler) ListSent(c *gin.Context) {
	requests, err := h.followService.ListSent(c.Request.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, requests, &response.Meta{Total: len(requests)})
}

// Accept a follow request
// POST /api/v1/follow-requests/:id/accept
func (h *FollowHandler) Accept(c *gin.Context) {
	id, ok := parseID(c, "id", "follow request")
	if !ok {
		return
	}
	result, err := h.followService.Accept(c.Request.Context(), middleware.ViewerFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Decline a follow request
// POST /api/v1/follow-requests/:id/decline
func (h *FollowHandler) Decline(c *gin.Context) {
	id, ok := parseID(c, "id", "follow request")
	if !ok {
		return
	}
	result, err := h.followService.Decline(c.Request.Context(), middleware.ViewerFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// =====================================================
// EDGES
// =====================================================

// ListFollowing GET /api/v1/following
func (h *FollowHandler) ListFollowing(c *gin.Context) {
	list, err := h.followService.ListFollowing(c.Request.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, list, &response.Meta{Total: len(list)})
}

// ListFollowers GET /api/v1/followers
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	list, err := h.followService.ListFollowers(c.Request.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, list, &response.Meta{Total: len(list)})
}

// Unfollow DELETE /api/v1/following/:id
func (h *FollowHandler) Unfollow(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.followService.Unfollow(c.Request.Context(), middleware.ViewerFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
