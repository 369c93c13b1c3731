package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/utils"
)

type DiagnosisController struct {
	diagnosisService services.DiagnosisServiceInterface
}

func NewDiagnosisController(diagnosisService services.DiagnosisServiceInterface) *DiagnosisController {
	return &DiagnosisController{
		diagnosisService: diagnosisService,
	}
}

// Upload godoc
// @Summary Diagnose a plant disease from an image or video
// @Description Upload a photo or short video of the affected plant and get an AI diagnosis
// @Tags Diagnosis
// @Accept mpfd
// @Produce json
// @Param file formData file true "Plant image (jpeg/png) or video (mp4/avi/mov)"
// @Success 201 {object} response_models.DiagnosisResult
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/diagnosis/upload [post]
func (d *DiagnosisController) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.HandleServiceError(c, utils.ErrFileRequired)
		return
	}

	result, err := d.diagnosisService.Analyze(c.Request.Context(), userID, file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "Diagnosis completed successfully")
}

func (d *DiagnosisController) FollowUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request request_models.DiagnosisFollowUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := d.diagnosisService.FollowUp(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Follow-up answered successfully")
}

func (d *DiagnosisController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query request_models.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := d.diagnosisService.List(c.Request.Context(), userID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Diagnoses fetched successfully")
}

func (d *DiagnosisController) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	diagnosisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid diagnosis ID")
		return
	}

	diagnosis, err := d.diagnosisService.GetByID(c.Request.Context(), userID, diagnosisID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, diagnosis, "Diagnosis fetched successfully")
}

func (d *DiagnosisController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	diagnosisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid diagnosis ID")
		return
	}

	if err := d.diagnosisService.Delete(c.Request.Context(), userID, diagnosisID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Diagnosis deleted successfully")
}

func (d *DiagnosisController) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := d.diagnosisService.Stats(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Diagnosis statistics fetched successfully")
}

// Diseases godoc
// @Summary List diagnosed diseases grouped by name
// @Tags Diagnosis
// @Produce json
// @Success 200 {array} response_models.DiseaseGroup
// @Security BearerAuth
// @Router /api/diagnosis/diseases/list [get]
func (d *DiagnosisController) Diseases(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	groups, err := d.diagnosisService.DiseasesList(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, groups, "Diseases fetched successfully")
}
