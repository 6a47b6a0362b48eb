package handlers

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/dto"
	"heritage-archive/domain/services"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/utils"
)

type MessageHandler struct {
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMine returns the caller's conversation with the admins
// @Summary My messages
// @Tags Messages
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=[]dto.MessageResponse}
// @Router /messages [get]
func (h *MessageHandler) ListMine(c *fiber.Ctx) error {
	messages, err := h.messageService.ListMine(c.UserContext(), middleware.CurrentProfile(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Messages retrieved", dto.MessagesToResponse(messages))
}

// Send posts a message to the admins
// @Summary Send message
// @Tags Messages
// @Security BearerAuth
// @Accept json
// @Param body body dto.SendMessageRequest true "Message"
// @Success 201 {object} utils.Response{data=dto.MessageResponse}
// @Router /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messageService.Send(c.UserContext(), middleware.CurrentProfile(c).ID, req.Content)
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, "Message sent", dto.MessageToResponse(msg))
}

// Threads returns every conversation grouped by account
// @Summary Admin inbox
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=[]dto.MessageThreadResponse}
// @Router /admin/messages [get]
func (h *MessageHandler) Threads(c *fiber.Ctx) error {
	threads, err := h.messageService.Threads(c.UserContext(), middleware.CurrentProfile(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Threads retrieved", dto.ThreadsToResponse(threads))
}

// Reply answers a member as admin
// @Summary Reply to member
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param userId path string true "Account ID"
// @Param body body dto.SendMessageRequest true "Reply"
// @Success 201 {object} utils.Response{data=dto.MessageResponse}
// @Router /admin/messages/{userId}/reply [post]
func (h *MessageHandler) Reply(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messageService.Reply(c.UserContext(), middleware.CurrentProfile(c).ID, c.Params("userId"), req.Content)
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, "Reply sent", dto.MessageToResponse(msg))
}
