package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type TableHandler struct {
	tableService services.TableService
}

func NewTableHandler(tableService services.TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

// CreateTable registers a new billiard table (admin only)
func (h *TableHandler) CreateTable(c *gin.Context) {
	var request validators.CreateTableRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	table, err := h.tableService.Create(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Table created", table)
}

func (h *TableHandler) GetTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	table, err := h.tableService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Table retrieved", table)
}

// ListTables supports filtering by area and status for the floor view
func (h *TableHandler) ListTables(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var areaID *primitive.ObjectID
	if areaStr := c.Query("area"); areaStr != "" {
		id, err := primitive.ObjectIDFromHex(areaStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid area")
			return
		}
		areaID = &id
	}

	status := models.TableStatus(c.Query("status"))
	if status != "" && !models.ValidTableStatus(status) {
		utils.BadRequestResponse(c, "Invalid status")
		return
	}

	tables, total, err := h.tableService.List(c.Request.Context(), params, areaID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Tables retrieved", tables, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateTableRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	table, err := h.tableService.Update(c.Request.Context(), id, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Table updated", table)
}

func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tableService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Table deleted", nil)
}

// ReorderTables saves the floor layout order for a batch of tables
func (h *TableHandler) ReorderTables(c *gin.Context) {
	var request validators.ReorderTablesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	if err := h.tableService.Reorder(c.Request.Context(), &request); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tables reordered", nil)
}

// UpdateTableStatus flips a table between available, reserved and maintenance
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	table, err := h.tableService.SetStatus(c.Request.Context(), id, models.TableStatus(request.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Table status updated", table)
}

func (h *TableHandler) UpdateTableActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateTableActiveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	table, err := h.tableService.SetActive(c.Request.Context(), id, *request.Active)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Table activation updated", table)
}

// UpdateTableRate changes the hourly rate for future sessions only
func (h *TableHandler) UpdateTableRate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateTableRateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	table, err := h.tableService.SetRate(c.Request.Context(), id, request.RatePerHour)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Table rate updated", table)
}
