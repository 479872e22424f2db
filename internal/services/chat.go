package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/learnpath-backend/internal/data/repos"
	"github.com/yungbote/learnpath-backend/internal/learning/prompts"
	"github.com/yungbote/learnpath-backend/internal/platform/apierr"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/openai"
)

//go:generate mockgen -source=chat.go -destination=../mocks/services/mock_chat.go -package=mock_services

const (
	ChatTemperature     = 0.7
	ChatMaxOutputTokens = 1000
	maxChatMessages     = 50
	maxChatMessageChars = 8000
)

type ChatService interface {
	// Stream relays the assistant's reply through onDelta and returns the full
	// text. It stops as soon as ctx is cancelled or onDelta fails.
	Stream(ctx context.Context, messages []openai.Message, onDelta func(delta string) error) (string, error)
}

type chatService struct {
	log      *logger.Logger
	ai       openai.Client
	pathRepo repos.PathRepo
}

func NewChatService(log *logger.Logger, ai openai.Client, pathRepo repos.PathRepo) ChatService {
	return &chatService{log: log.With("service", "ChatService"), ai: ai, pathRepo: pathRepo}
}

func (cs *chatService) Stream(ctx context.Context, messages []openai.Message, onDelta func(delta string) error) (string, error) {
	uid, err := requireUser(ctx)
	if err != nil {
		return "", err
	}
	msgs, err := sanitizeChatMessages(messages)
	if err != nil {
		return "", apierr.Invalid("invalid_messages", err)
	}

	paths, err := cs.pathRepo.ListByUser(dbctx.Of(ctx), uid, prompts.MaxChatContextPaths)
	if err != nil {
		return "", apierr.Storage("chat_context_failed", fmt.Errorf("list paths: %w", err))
	}
	pctx := make([]prompts.PathContext, 0, len(paths))
	for _, p := range paths {
		pctx = append(pctx, prompts.PathContext{Title: p.Title, Description: p.Description})
	}

	temp := ChatTemperature
	req := openai.ChatRequest{
		System:          prompts.ChatSystem(pctx),
		Messages:        msgs,
		Temperature:     &temp,
		MaxOutputTokens: ChatMaxOutputTokens,
	}
	text, err := cs.ai.StreamChat(ctx, req, onDelta)
	if err != nil {
		if ctx.Err() != nil {
			cs.log.Info("chat aborted by client", "user_id", uid)
			return text, ctx.Err()
		}
		return text, apierr.Upstream("chat_failed", errors.New("assistant is unavailable"))
	}
	return text, nil
}

func sanitizeChatMessages(in []openai.Message) ([]openai.Message, error) {
	if len(in) == 0 {
		return nil, errors.New("messages must not be empty")
	}
	if len(in) > maxChatMessages {
		in = in[len(in)-maxChatMessages:]
	}
	out := make([]openai.Message, 0, len(in))
	for i, m := range in {
		role := openai.Role(strings.ToLower(strings.TrimSpace(string(m.Role))))
		if role != openai.RoleUser && role != openai.RoleAssistant {
			return nil, fmt.Errorf("message %d has unsupported role %q", i, m.Role)
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if utf8.RuneCountInString(content) > maxChatMessageChars {
			return nil, fmt.Errorf("message %d exceeds %d characters", i, maxChatMessageChars)
		}
		out = append(out, openai.Message{Role: role, Content: content})
	}
	if len(out) == 0 || out[len(out)-1].Role != openai.RoleUser {
		return nil, errors.New("last message must be a non-empty user message")
	}
	return out, nil
}
