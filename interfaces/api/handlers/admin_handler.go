package handlers

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/dto"
	"heritage-archive/domain/services"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/utils"
)

// AdminHandler exposes the moderation workflow. The route group is admin-only
// and every service call checks the role again against the store.
type AdminHandler struct {
	moderation services.ModerationService
}

func NewAdminHandler(moderation services.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

func actorID(c *fiber.Ctx) string {
	if p := middleware.CurrentProfile(c); p != nil {
		return p.ID
	}
	return ""
}

// Pending returns the review queue
// @Summary Pending submissions and accounts
// @Tags Admin
// @Security BearerAuth
// @Param search query string false "Search pending submissions"
// @Success 200 {object} utils.Response
// @Router /admin/pending [get]
func (h *AdminHandler) Pending(c *fiber.Ctx) error {
	persons, err := h.moderation.PendingPersons(c.UserContext(), actorID(c), c.Query("search"))
	if err != nil {
		return err
	}
	accounts, err := h.moderation.PendingAccounts(c.UserContext(), actorID(c))
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, "Pending items retrieved", fiber.Map{
		"persons":  dto.PersonsToResponse(persons),
		"accounts": dto.ProfilesToResponse(accounts),
	})
}

// ApprovePerson makes a submission visible
// @Summary Approve submission
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} utils.Response{data=dto.PersonResponse}
// @Failure 404 {object} utils.Response
// @Router /admin/persons/{id}/approve [post]
func (h *AdminHandler) ApprovePerson(c *fiber.Ctx) error {
	person, err := h.moderation.ApprovePerson(c.UserContext(), actorID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Family member approved", dto.PersonToResponse(person))
}

// RejectPerson deletes a submission
// @Summary Reject submission
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} utils.Response
// @Router /admin/persons/{id}/reject [post]
func (h *AdminHandler) RejectPerson(c *fiber.Ctx) error {
	if err := h.moderation.RejectPerson(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Submission rejected", nil)
}

// UpdatePerson edits a family member
// @Summary Edit family member
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Person ID"
// @Param body body dto.UpdatePersonRequest true "Changed fields"
// @Success 200 {object} utils.Response{data=dto.PersonResponse}
// @Failure 409 {object} utils.Response
// @Router /admin/persons/{id} [put]
func (h *AdminHandler) UpdatePerson(c *fiber.Ctx) error {
	var req dto.UpdatePersonRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	person, err := h.moderation.UpdatePerson(c.UserContext(), actorID(c), c.Params("id"), req.ToColumns(), req.ExpectedVersion)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Family member updated", dto.PersonToResponse(person))
}

// DeletePersonImage removes the profile image or one gallery image
// @Summary Remove image
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Person ID"
// @Param body body dto.DeleteImageRequest false "Gallery image; empty clears the profile image"
// @Success 200 {object} utils.Response{data=dto.PersonResponse}
// @Router /admin/persons/{id}/image [delete]
func (h *AdminHandler) DeletePersonImage(c *fiber.Ctx) error {
	var req dto.DeleteImageRequest
	if len(c.Body()) > 0 {
		if err := utils.ParseAndValidate(c, &req); err != nil {
			return err
		}
	}

	person, err := h.moderation.DeletePersonImage(c.UserContext(), actorID(c), c.Params("id"), req.ImageURL)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Image removed", dto.PersonToResponse(person))
}

// Accounts lists every account
// @Summary List accounts
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=[]dto.ProfileResponse}
// @Router /admin/accounts [get]
func (h *AdminHandler) Accounts(c *fiber.Ctx) error {
	accounts, err := h.moderation.Accounts(c.UserContext(), actorID(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Accounts retrieved", dto.ProfilesToResponse(accounts))
}

// ApproveAccount lets an account contribute
// @Summary Approve account
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} utils.Response{data=dto.ProfileResponse}
// @Router /admin/accounts/{id}/approve [post]
func (h *AdminHandler) ApproveAccount(c *fiber.Ctx) error {
	profile, err := h.moderation.ApproveAccount(c.UserContext(), actorID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Account approved", dto.ProfileToResponse(profile))
}

// RejectAccount removes a pending account's profile
// @Summary Reject account
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} utils.Response
// @Router /admin/accounts/{id}/reject [post]
func (h *AdminHandler) RejectAccount(c *fiber.Ctx) error {
	if err := h.moderation.RejectAccount(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Account rejected", nil)
}

// UpdateAccount changes name, role or approval
// @Summary Edit account
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Account ID"
// @Param body body dto.UpdateAccountRequest true "Changed fields"
// @Success 200 {object} utils.Response{data=dto.ProfileResponse}
// @Router /admin/accounts/{id} [put]
func (h *AdminHandler) UpdateAccount(c *fiber.Ctx) error {
	var req dto.UpdateAccountRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.moderation.UpdateAccount(c.UserContext(), actorID(c), c.Params("id"), req.ToColumns())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Account updated", dto.ProfileToResponse(profile))
}

// DeleteAccount removes a member account. Admin accounts are refused.
// @Summary Delete account
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/accounts/{id} [delete]
func (h *AdminHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.moderation.DeleteAccount(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Account deleted", nil)
}
