package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

type PathHandler struct {
	log         *logger.Logger
	pathService services.PathService
}

func NewPathHandler(log *logger.Logger, pathService services.PathService) *PathHandler {
	return &PathHandler{log: log.With("handler", "PathHandler"), pathService: pathService}
}

// POST /api/learning-paths/generate
func (h *PathHandler) Generate(c *gin.Context) {
	var req services.GeneratePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	path, err := h.pathService.Generate(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"pathId": path.ID, "path": path})
}

// GET /api/learning-paths
func (h *PathHandler) List(c *gin.Context) {
	paths, err := h.pathService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if paths == nil {
		paths = []*services.PathWithProgress{}
	}
	response.RespondOK(c, gin.H{"paths": paths})
}

// GET /api/learning-paths/:id
func (h *PathHandler) Get(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", errors.New("path id must be a UUID"))
		return
	}
	pwp, err := h.pathService.Get(c.Request.Context(), pathID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"path": pwp.Path, "progress": pwp.Progress})
}
