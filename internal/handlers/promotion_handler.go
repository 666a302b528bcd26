package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type PromotionHandler struct {
	promotionService services.PromotionService
}

func NewPromotionHandler(promotionService services.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

// CreatePromotion registers a new promotion (admin only)
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var request validators.CreatePromotionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreatePromotion(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	promo, err := h.promotionService.Create(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Promotion created", promo)
}

func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	promo, err := h.promotionService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Promotion retrieved", promo)
}

// ListPromotions returns promotions, optionally only the currently active ones
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	activeOnly := c.Query("active") == "true"

	promos, total, err := h.promotionService.List(c.Request.Context(), params, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Promotions retrieved", promos, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdatePromotionRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	// Code and scope are fixed at creation; a request naming either one
	// is rejected outright instead of silently ignored.
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err == nil {
		for _, field := range []string{"code", "scope"} {
			if _, present := raw[field]; present {
				respondServiceError(c, errors.New(utils.ErrPromotionImmutable))
				return
			}
		}
	}

	if errs := validators.ValidateUpdatePromotion(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	promo, err := h.promotionService.Update(c.Request.Context(), id, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Promotion updated", promo)
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Promotion deleted", nil)
}

// PreviewPromotion evaluates one promotion against a hypothetical bill
func (h *PromotionHandler) PreviewPromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.PreviewPromotionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	result, err := h.promotionService.Preview(c.Request.Context(), id, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Promotion evaluated", result)
}

// Quote stacks the active promotions (or a requested subset) over a bill
func (h *PromotionHandler) Quote(c *gin.Context) {
	var request validators.QuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateQuote(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	result, err := h.promotionService.Quote(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Quote computed", result)
}
