package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/book/model"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/internal/shared/response"
	"bookjournal-backend/internal/shared/utils"
)

type Handler struct {
	service model.ServiceInterface
}

func NewHandler(service model.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), middleware.ViewerFromContext(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Header("Location", "/api/v1/books/"+book.ID.String())
	response.Success(c, http.StatusCreated, book)
}

// GetBook GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// ListBooks GET /api/v1/books?query=&limit=&offset=
func (h *Handler) ListBooks(c *gin.Context) {
	page := utils.ParsePage(c.Query("limit"), c.Query("offset"))
	books, total, err := h.service.ListBooks(c.Request.Context(), model.BookFilter{
		Query:  c.Query("query"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
	})
}
