package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/openai"
	"github.com/yungbote/learnpath-backend/internal/services"
)

const (
	eventTextDelta = "text.delta"
	eventTextDone  = "text.done"
	eventError     = "error"
)

type ChatHandler struct {
	log         *logger.Logger
	chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{log: log.With("handler", "ChatHandler"), chatService: chatService}
}

// POST /api/chat
// body: { "messages": [{ "role": "user", "content": "..." }] }
//
// The reply is relayed as server-sent events: one text.delta per chunk, a
// final text.done, then "data: [DONE]". Failures before the first chunk are
// ordinary JSON errors.
func (h *ChatHandler) Stream(c *gin.Context) {
	var req struct {
		Messages []openai.Message `json:"messages"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "streaming_unsupported", errors.New("streaming unsupported"))
		return
	}

	ctx := c.Request.Context()
	started := false
	start := func() {
		if started {
			return
		}
		started = true
		c.Header("Content-Type", "text/event-stream; charset=utf-8")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		flusher.Flush()
	}

	full, err := h.chatService.Stream(ctx, req.Messages, func(delta string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start()
		if err := writeEvent(c, eventTextDelta, gin.H{"delta": delta}); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			h.log.Debug("chat client went away", "error", err, "started", started)
			c.Abort()
			return
		}
		if !started {
			response.RespondAPIError(c, h.log, err)
			return
		}
		h.log.Warn("chat stream failed", "error", apierr.Cause(err))
		msg := "chat failed"
		if ae, ok := apierr.As(err); ok && ae.Status < http.StatusInternalServerError {
			msg = ae.Error()
		}
		_ = writeEvent(c, eventError, gin.H{"error": msg})
		_, _ = fmt.Fprint(c.Writer, "data: [DONE]\n\n")
		flusher.Flush()
		return
	}

	start()
	_ = writeEvent(c, eventTextDone, gin.H{"text": full})
	_, _ = fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}

func writeEvent(c *gin.Context, event string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, b)
	return err
}
