package handlers

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/dto"
	"heritage-archive/domain/services"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/utils"
)

type FamilyHandler struct {
	personService services.PersonService
}

func NewFamilyHandler(personService services.PersonService) *FamilyHandler {
	return &FamilyHandler{personService: personService}
}

// ListDirectory returns approved family members
// @Summary List family directory
// @Tags Family
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search name, nickname or birth place"
// @Param has_story query bool false "Only members with a life story"
// @Param has_photo query bool false "Only members with a photo"
// @Success 200 {object} utils.Response{data=[]dto.DirectoryEntryResponse}
// @Router /family [get]
func (h *FamilyHandler) ListDirectory(c *fiber.Ctx) error {
	var query dto.DirectoryQuery
	if err := utils.ParseQuery(c, &query); err != nil {
		return err
	}

	entries, err := h.personService.ListDirectory(c.UserContext(), services.DirectoryFilter{
		Search:   query.Search,
		HasStory: query.HasStory,
		HasPhoto: query.HasPhoto,
	})
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, "Family directory retrieved", dto.DirectoryToResponse(entries))
}

// GetPerson returns one person with parents, spouse and children
// @Summary Get family member profile
// @Tags Family
// @Security BearerAuth
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} utils.Response{data=dto.PersonProfileResponse}
// @Failure 404 {object} utils.Response
// @Router /family/{id} [get]
func (h *FamilyHandler) GetPerson(c *fiber.Ctx) error {
	profile, err := h.personService.GetProfile(c.UserContext(), middleware.CurrentProfile(c), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Family member retrieved", dto.PersonProfileToResponse(profile))
}

// SubmitPerson stores a new family member for review
// @Summary Submit a family member
// @Tags Family
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreatePersonRequest true "New family member"
// @Success 201 {object} utils.Response{data=dto.PersonResponse}
// @Router /family [post]
func (h *FamilyHandler) SubmitPerson(c *fiber.Ctx) error {
	var req dto.CreatePersonRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	person, err := h.personService.Submit(c.UserContext(), middleware.CurrentProfile(c), req.ToModel())
	if err != nil {
		return err
	}

	return utils.CreatedResponse(c, "Submitted for review", dto.PersonToResponse(person))
}

// Dashboard returns the signed-in member's overview
// @Summary Member dashboard
// @Tags Family
// @Security BearerAuth
// @Produce json
// @Success 200 {object} utils.Response{data=dto.DashboardResponse}
// @Router /dashboard [get]
func (h *FamilyHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.personService.Dashboard(c.UserContext(), middleware.CurrentProfile(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, "Dashboard retrieved", dto.DashboardToResponse(dashboard))
}
