package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/author/model"
	"bookjournal-backend/internal/domains/author/service"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/internal/shared/response"
	"bookjournal-backend/internal/shared/utils"
)

// AuthorHandler handles HTTP requests for author operations
type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(service service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// Create POST /api/v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	author, err := h.service.Create(c.Request.Context(), middleware.ViewerFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, author)
}

// GetByID GET /api/v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author ID")
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, author)
}

// List GET /api/v1/authors?query=&limit=&offset=
func (h *AuthorHandler) List(c *gin.Context) {
	page := utils.ParsePage(c.Query("limit"), c.Query("offset"))
	filter := model.AuthorFilter{
		Query:  c.Query("query"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	authors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, authors, &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
	})
}
