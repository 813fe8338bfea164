package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linkai-dev/linkai/internal/engine"
	"github.com/linkai-dev/linkai/models"
)

// ChatService is the part of the engine the chatbot API needs.
type ChatService interface {
	Chat(ctx context.Context, sessionID, message string) (engine.Answer, error)
	ListSessions(ctx context.Context, limit int) ([]models.SessionSummary, error)
	GetHistory(ctx context.Context, sessionID string) ([]models.Message, error)
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}

type ChatbotHandler struct {
	Engine    ChatService
	ListLimit int
}

func (h *ChatbotHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
	g.GET("/sessions", h.listSessions)
	g.GET("/sessions/:id", h.history)
	g.DELETE("/sessions/:id", h.deleteSession)
}

func (h *ChatbotHandler) chat(c echo.Context) error {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message required")
	}

	answer, err := h.Engine.Chat(c.Request().Context(), req.SessionID, req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, answer)
}

func (h *ChatbotHandler) listSessions(c echo.Context) error {
	limit := h.ListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		if limit <= 0 || n < limit {
			limit = n
		}
	}

	summaries, err := h.Engine.ListSessions(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summaries)
}

// history returns the session's messages; an unknown session yields an
// empty list, matching the stores
func (h *ChatbotHandler) history(c echo.Context) error {
	history, err := h.Engine.GetHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, history)
}

func (h *ChatbotHandler) deleteSession(c echo.Context) error {
	deleted, err := h.Engine.DeleteSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
