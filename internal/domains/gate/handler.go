package gate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/internal/shared/response"
)

// Handler - detail views guarded by the gate (optional auth)
type Handler struct {
	gate *Gate
}

func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

// GetProfile GET /api/v1/users/:id
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	view, err := h.gate.AuthorizeProfileView(c.Request.Context(), middleware.ViewerFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetEntry GET /api/v1/entries/:id
func (h *Handler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.gate.AuthorizeEntryView(c.Request.Context(), middleware.ViewerFromContext(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}
