package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prismaticcrm/teacher-assistant/domain"
	"github.com/prismaticcrm/teacher-assistant/usecase"
	"github.com/prismaticcrm/teacher-assistant/utils/log"
)

const ServiceName = "teacher-assistant-chatbot"

type ChatHandler struct {
	svc      *usecase.ChatService
	profiles domain.ProfileFetcher
}

type ChatResponse struct {
	Response string `json:"response"`
}

func NewChatHandler(svc *usecase.ChatService, profiles domain.ProfileFetcher) *ChatHandler {
	return &ChatHandler{svc: svc, profiles: profiles}
}

// Chat handles one conversation turn.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req usecase.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if req.InstructorID > 0 {
		ctx = context.WithValue(ctx, log.InstructorID, req.InstructorID)
	}

	reply, err := h.svc.Chat(ctx, req)
	if err != nil {
		log.WithCtx(ctx).Warn("chat turn failed", zap.Error(err))
		return HTTPError(err)
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// InstructorProfile fetches and returns a profile document verbatim.
func (h *ChatHandler) InstructorProfile(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "instructor id must be a positive integer")
	}

	ctx := context.WithValue(c.Request().Context(), log.InstructorID, id)
	url, err := h.svc.ResolveProfileURL(usecase.ChatRequest{InstructorID: id})
	if err != nil {
		return HTTPError(err)
	}

	doc, err := h.profiles.Fetch(ctx, url)
	if err != nil {
		log.WithCtx(ctx).Warn("profile lookup failed", zap.Error(err))
		return HTTPError(err)
	}

	return c.JSONBlob(http.StatusOK, doc)
}

// Root lists the service's endpoints.
func (h *ChatHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Teacher Assistant Chatbot API",
		"endpoints": map[string]string{
			"POST /chat":          "Main chat endpoint - send messages to the teacher assistant",
			"GET /instructor/:id": "Get instructor profile information",
			"GET /ws/chat":        "Chat over a WebSocket connection",
			"GET /health":         "Health check",
		},
	})
}

// Health reports service liveness.
func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// HTTPError maps domain errors onto HTTP responses. Upstream profile
// errors keep their original status and body.
func HTTPError(err error) *echo.HTTPError {
	var remote *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &remote):
		return echo.NewHTTPError(remote.StatusCode, remote.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
