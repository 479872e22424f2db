package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

type LibraryHandler struct {
	log            *logger.Logger
	libraryService services.LibraryService
}

func NewLibraryHandler(log *logger.Logger, libraryService services.LibraryService) *LibraryHandler {
	return &LibraryHandler{log: log.With("handler", "LibraryHandler"), libraryService: libraryService}
}

// POST /api/library/add
func (h *LibraryHandler) Add(c *gin.Context) {
	var req services.AddResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.libraryService.Add(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"resource": res})
}

// POST /api/library/favorite
// body: { "resourceId": "...", "isFavorite": true }
func (h *LibraryHandler) Favorite(c *gin.Context) {
	var req struct {
		ResourceID string `json:"resourceId"`
		IsFavorite *bool  `json:"isFavorite"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, err := uuid.Parse(req.ResourceID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_resource_id", errors.New("resourceId must be a UUID"))
		return
	}
	if req.IsFavorite == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("isFavorite is required"))
		return
	}
	if err := h.libraryService.SetFavorite(c.Request.Context(), id, *req.IsFavorite); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// GET /api/library?q=&type=&difficulty=&favorites=true
func (h *LibraryHandler) List(c *gin.Context) {
	filter := types.LibraryFilter{
		Query:        strings.TrimSpace(c.Query("q")),
		ResourceType: types.ResourceType(strings.TrimSpace(c.Query("type"))),
		Difficulty:   strings.TrimSpace(c.Query("difficulty")),
	}
	if raw := c.Query("favorites"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_filter", errors.New("favorites must be a boolean"))
			return
		}
		filter.FavoritesOnly = fav
	}
	resources, err := h.libraryService.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if resources == nil {
		resources = []*types.LibraryResource{}
	}
	response.RespondOK(c, gin.H{"resources": resources})
}
