package handlers

import (
	"github.com/gofiber/fiber/v2"

	"feedsoko/internal/domain"
	applog "feedsoko/internal/log"
	"feedsoko/internal/services"
	"feedsoko/internal/validate"
)

type MessageHandler struct {
	Chat *services.ChatService
}

type sendMessageReq struct {
	ReceiverID  int64  `json:"receiverId" validate:"required,gt=0"`
	OrderID     *int64 `json:"orderId" validate:"omitempty,gt=0"`
	Content     string `json:"content" validate:"required,max=2000"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req sendMessageReq
	if err := bind(c, &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "message_body"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid message")
	}
	id, err := h.Chat.Send(currentUser(c), req.ReceiverID, req.OrderID, req.Content, domain.MessageType(req.MessageType))
	if err != nil {
		applog.Error(c, "messages.send.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Info(c, "messages.send", map[string]any{"message_id": id, "receiver_id": req.ReceiverID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	msgs, err := h.Chat.Inbox(currentUser(c))
	if err != nil {
		applog.Error(c, "messages.inbox.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load messages")
	}
	return c.JSON(msgs)
}

// Conversation returns the thread with another user and marks their side read.
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	otherID, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "user not found")
	}
	msgs, err := h.Chat.Conversation(currentUser(c), otherID)
	if err != nil {
		applog.Error(c, "messages.conversation.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load conversation")
	}
	return c.JSON(msgs)
}

type markReadReq struct {
	SenderID int64 `json:"senderId" validate:"required,gt=0"`
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	var req markReadReq
	if err := bind(c, &req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request")
	}
	changed, err := h.Chat.MarkRead(currentUser(c), req.SenderID)
	if err != nil {
		applog.Error(c, "messages.read.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not mark messages read")
	}
	return c.JSON(fiber.Map{"updated": changed})
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.Chat.UnreadCount(currentUser(c))
	if err != nil {
		applog.Error(c, "messages.unread.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not count messages")
	}
	return c.JSON(fiber.Map{"unread": n})
}
