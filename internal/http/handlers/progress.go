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

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{log: log.With("handler", "ProgressHandler"), progressService: progressService}
}

type progressUpdateRequest struct {
	PathID         string  `json:"pathId"`
	MilestoneIndex *int    `json:"milestoneIndex"`
	Completed      *bool   `json:"completed"`
	ProgressID     *string `json:"progressId"`
}

// POST /api/progress/update
// body: { "pathId": "...", "milestoneIndex": 0, "completed": true, "progressId": "..." }
func (h *ProgressHandler) Update(c *gin.Context) {
	var req progressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	pathID, err := uuid.Parse(req.PathID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", errors.New("pathId must be a UUID"))
		return
	}
	if req.MilestoneIndex == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_milestone_index", errors.New("milestoneIndex is required"))
		return
	}
	if req.Completed == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("completed is required"))
		return
	}

	upd := services.ProgressUpdate{
		PathID:         pathID,
		MilestoneIndex: *req.MilestoneIndex,
		Completed:      *req.Completed,
	}
	if req.ProgressID != nil && *req.ProgressID != "" {
		id, err := uuid.Parse(*req.ProgressID)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_progress_id", errors.New("progressId must be a UUID"))
			return
		}
		upd.ProgressID = &id
	}

	res, err := h.progressService.Update(c.Request.Context(), upd)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":         true,
		"progressId":      res.Entry.ID,
		"completed":       res.Entry.Completed,
		"completedAt":     res.Entry.CompletedAt,
		"completedCount":  res.Progress.CompletedCount,
		"totalMilestones": res.Progress.TotalMilestones,
		"percentage":      res.Progress.Percentage,
	})
}
