package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	claims := currentClaims(c)
	conversations, err := h.chat.ListConversations(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, conversations)
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	claims := currentClaims(c)
	var in struct {
		ProductID *int `json:"product_id"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	conversation, err := h.chat.StartConversation(c.Request().Context(), claims.UserID, in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, conversation)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	conversation, err := h.chat.GetConversation(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, conversation)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	messages, err := h.chat.ListMessages(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	claims := currentClaims(c)
	var in struct {
		ConversationID int    `json:"conversation_id"`
		Content        string `json:"content"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	message, err := h.chat.SendMessage(c.Request().Context(), claims.UserID, in.ConversationID, in.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, message)
}
