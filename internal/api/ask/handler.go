package ask

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"course-copilot/config"
	coreask "course-copilot/internal/core/ask"
	"course-copilot/pkg/apperror"
	"course-copilot/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type Handler struct {
	svc *coreask.Service
}

func NewHandler(svc *coreask.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) HandleAsk(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req coreask.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleAsk, c, status.AskInvalidRequestBody, err.Error())
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return apperror.BadRequest(config.ModuleAsk, c, status.AskMissingQuestion, "question is empty")
	}

	resp, err := h.svc.Run(context.Background(), req)
	if err != nil {
		var cfgErr *coreask.ConfigError
		switch {
		case errors.Is(err, coreask.ErrEmptyQuestion):
			return apperror.BadRequest(config.ModuleAsk, c, status.AskMissingQuestion, err.Error())
		case errors.As(err, &cfgErr):
			code := status.AskEmbeddingNotConfigured
			if cfgErr.Provider == "generation" {
				code = status.AskGenerationNotConfigured
			}
			return apperror.InternalErrorCode(config.ModuleAsk, c, code, cfgErr.Error())
		default:
			// Provider detail was already logged inside the pipeline; the
			// caller only gets a generic failure.
			return apperror.InternalErrorCode(config.ModuleAsk, c, status.AskInternal, "failed to answer question")
		}
	}

	return apperror.Success(config.ModuleAsk, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ask ok",
		TrackingID: trackingID,
		Data:       resp,
	})
}
