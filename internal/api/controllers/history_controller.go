package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/utils"
)

type HistoryController struct {
	historyService services.HistoryServiceInterface
}

func NewHistoryController(historyService services.HistoryServiceInterface) *HistoryController {
	return &HistoryController{
		historyService: historyService,
	}
}

// List godoc
// @Summary Browse combined crop plan and diagnosis history
// @Tags History
// @Produce json
// @Param type query string false "Record type" Enums(crop-plans, diagnoses, all) default(all)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10) maximum(50)
// @Success 200 {object} response_models.PagedHistory
// @Security BearerAuth
// @Router /api/history/get [get]
func (h *HistoryController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query request_models.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := h.historyService.List(c.Request.Context(), userID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "History fetched successfully")
}

func (h *HistoryController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.historyService.Delete(c.Request.Context(), userID, c.Param("type"), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "History record deleted successfully")
}

func (h *HistoryController) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// an empty body means "clear everything"
	var request request_models.ClearHistoryRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	if err := h.historyService.Clear(c.Request.Context(), userID, request.Type); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "History cleared successfully")
}

func (h *HistoryController) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.historyService.Stats(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "History statistics fetched successfully")
}

// Similar godoc
// @Summary Find records similar to a given one
// @Description Nearest-neighbor search over stored embeddings, scoped to the same record type
// @Tags History
// @Produce json
// @Param type path string true "Record type" Enums(crop-plan, diagnosis)
// @Param id path string true "Record ID"
// @Success 200 {array} response_models.HistoryItem
// @Security BearerAuth
// @Router /api/history/similar/{type}/{id} [get]
func (h *HistoryController) Similar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	items, err := h.historyService.Similar(c.Request.Context(), userID, c.Param("type"), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Similar records fetched successfully")
}
