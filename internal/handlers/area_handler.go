package handlers

import (
	"github.com/gin-gonic/gin"

	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type AreaHandler struct {
	areaService services.AreaService
}

func NewAreaHandler(areaService services.AreaService) *AreaHandler {
	return &AreaHandler{
		areaService: areaService,
	}
}

func (h *AreaHandler) CreateArea(c *gin.Context) {
	var request validators.CreateAreaRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	area, err := h.areaService.Create(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Area created", area)
}

func (h *AreaHandler) GetArea(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	area, err := h.areaService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Area retrieved", area)
}

// ListAreas returns all areas in display order
func (h *AreaHandler) ListAreas(c *gin.Context) {
	areas, err := h.areaService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Areas retrieved", areas)
}

func (h *AreaHandler) UpdateArea(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateAreaRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	area, err := h.areaService.Update(c.Request.Context(), id, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Area updated", area)
}

func (h *AreaHandler) DeleteArea(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.areaService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Area deleted", nil)
}
