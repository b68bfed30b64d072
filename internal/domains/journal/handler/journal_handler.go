package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/journal/service"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/internal/shared/response"
	"bookjournal-backend/internal/shared/utils"
)

// =====================================================
// JOURNAL HANDLER
// =====================================================

type JournalHandler struct {
	entryService service.ServiceInterface
}

func NewJournalHandler(entryService service.ServiceInterface) *JournalHandler {
	return &JournalHandler{entryService: entryService}
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseListQuery đọc ?tag=&query=&limit=&offset=
func parseListQuery(c *gin.Context) (model.ListQuery, bool) {
	var q model.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query")
		return q, false
	}
	page := utils.ParsePage(c.Query("limit"), c.Query("offset"))
	q.Limit, q.Offset = page.Limit, page.Offset
	if err := q.Validate(); err != nil {
		response.FromError(c, err)
		return q, false
	}
	return q, true
}

func writeList(c *gin.Context, q model.ListQuery, entries []model.Entry, total int) {
	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{
		Limit:  q.Limit,
		Offset: q.Offset,
		Total:  total,
	})
}

// =====================================================
// WRITES
// =====================================================

// CreateEntry POST /api/v1/books/:id/entries
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	bookID, ok := parseID(c, "book")
	if !ok {
		return
	}

	var req model.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), middleware.ViewerFromContext(c), bookID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Header("Location", "/api/v1/entries/"+entry.ID.String())
	response.Success(c, http.StatusCreated, entry)
}

// UpdateEntry PUT /api/v1/entries/:id
func (h *JournalHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}

	var req model.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), middleware.ViewerFromContext(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// DeleteEntry DELETE /api/v1/entries/:id
func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), middleware.ViewerFromContext(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =====================================================
// LISTINGS
// =====================================================

// MyJournal GET /api/v1/journal
func (h *JournalHandler) MyJournal(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	entries, total, err := h.entryService.MyJournal(c.Request.Context(), middleware.ViewerFromContext(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writeList(c, q, entries, total)
}

// MyTags GET /api/v1/journal/tags
func (h *JournalHandler) MyTags(c *gin.Context) {
	tags, err := h.entryService.Tags(c.Request.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, tags, &response.Meta{Total: len(tags)})
}

// MyBookEntries GET /api/v1/journal/books/:id
func (h *JournalHandler) MyBookEntries(c *gin.Context) {
	bookID, ok := parseID(c, "book")
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	entries, total, err := h.entryService.MyBookEntries(c.Request.Context(), middleware.ViewerFromContext(c), bookID, q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writeList(c, q, entries, total)
}

// UserJournal GET /api/v1/users/:id/entries
func (h *JournalHandler) UserJournal(c *gin.Context) {
	ownerID, ok := parseID(c, "user")
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	entries, total, err := h.entryService.UserJournal(c.Request.Context(), middleware.ViewerFromContext(c), ownerID, q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writeList(c, q, entries, total)
}

// BookEntries GET /api/v1/books/:id/entries
func (h *JournalHandler) BookEntries(c *gin.Context) {
	bookID, ok := parseID(c, "book")
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	entries, total, err := h.entryService.BookEntries(c.Request.Context(), middleware.ViewerFromContext(c), bookID, q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writeList(c, q, entries, total)
}

// Feed GET /api/v1/feed
func (h *JournalHandler) Feed(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	entries, total, err := h.entryService.Feed(c.Request.Context(), middleware.ViewerFromContext(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writeList(c, q, entries, total)
}
