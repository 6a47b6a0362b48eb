package handlers

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/dto"
	"heritage-archive/domain/services"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/utils"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns comments on a family member, oldest first
// @Summary List comments
// @Tags Comments
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} utils.Response{data=[]dto.CommentResponse}
// @Router /family/{id}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.commentService.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Comments retrieved", dto.CommentsToResponse(comments))
}

// Create adds a comment to a family member
// @Summary Add comment
// @Tags Comments
// @Security BearerAuth
// @Accept json
// @Param id path string true "Person ID"
// @Param body body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} utils.Response{data=dto.CommentResponse}
// @Router /family/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	profile := middleware.CurrentProfile(c)
	comment, err := h.commentService.Create(c.UserContext(), profile.ID, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	comment.Profile = profile

	return utils.CreatedResponse(c, "Comment added", dto.CommentToResponse(comment))
}

// Delete removes a comment. Authors and admins only.
// @Summary Delete comment
// @Tags Comments
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} utils.Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	if err := h.commentService.Delete(c.UserContext(), middleware.CurrentProfile(c), c.Params("id")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Comment deleted", nil)
}
