package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/utils"
)

type CropPlanController struct {
	planService services.CropPlanServiceInterface
}

func NewCropPlanController(planService services.CropPlanServiceInterface) *CropPlanController {
	return &CropPlanController{
		planService: planService,
	}
}

// Generate godoc
// @Summary Generate a crop plan
// @Description Generate an AI crop plan from farm inputs; an optional image or video gives the model visual context
// @Tags CropPlan
// @Accept mpfd
// @Produce json
// @Param soilType formData string true "Soil type" Enums(clay, sandy, loamy, silty, peaty, chalky, unknown)
// @Param landSize formData number true "Land size in acres" minimum(0.1) maximum(1000)
// @Param irrigation formData string true "Irrigation method"
// @Param season formData string true "Growing season" Enums(kharif, rabi, zaid, year-round)
// @Param image formData file false "Field photo"
// @Param video formData file false "Field video"
// @Success 201 {object} response_models.CropPlanResult
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/cropplan/generate [post]
func (p *CropPlanController) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request request_models.CropPlanRequest
	if err := c.ShouldBind(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	// both parts are optional; FormFile errors just mean "not sent"
	image, _ := c.FormFile("image")
	video, _ := c.FormFile("video")

	result, err := p.planService.Generate(c.Request.Context(), userID, request, image, video)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "Crop plan generated successfully")
}

// FollowUp godoc
// @Summary Ask a follow-up question about a plan
// @Tags CropPlan
// @Accept json
// @Produce json
// @Param request body request_models.PlanFollowUpRequest true "Plan ID and question"
// @Success 200 {object} response_models.FollowUpResult
// @Security BearerAuth
// @Router /api/cropplan/followup [post]
func (p *CropPlanController) FollowUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request request_models.PlanFollowUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := p.planService.FollowUp(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Follow-up answered successfully")
}

func (p *CropPlanController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query request_models.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := p.planService.List(c.Request.Context(), userID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Crop plans fetched successfully")
}

func (p *CropPlanController) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	plan, err := p.planService.GetByID(c.Request.Context(), userID, planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Crop plan fetched successfully")
}

func (p *CropPlanController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	if err := p.planService.Delete(c.Request.Context(), userID, planID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Crop plan deleted successfully")
}

func (p *CropPlanController) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := p.planService.Stats(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Crop plan statistics fetched successfully")
}

// Status godoc
// @Summary Check AI service availability
// @Tags CropPlan
// @Produce json
// @Success 200 {object} response_models.AIServiceStatus
// @Security BearerAuth
// @Router /api/cropplan/status [get]
func (p *CropPlanController) Status(c *gin.Context) {
	status := p.planService.Status(c.Request.Context())
	utils.RespondSuccess(c, status, "AI service status fetched")
}
