package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bidapos/internal/models"
	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// OpenSession checks a table in and starts the clock
func (h *SessionHandler) OpenSession(c *gin.Context) {
	staffID, ok := currentStaffID(c)
	if !ok {
		return
	}

	var request validators.OpenSessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), &request, staffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Session opened", session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Session retrieved", session)
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	status := models.SessionStatus(c.Query("status"))
	switch status {
	case "", models.SessionOpen, models.SessionClosed, models.SessionVoid:
	default:
		utils.BadRequestResponse(c, "Invalid status")
		return
	}

	sessions, total, err := h.sessionService.List(c.Request.Context(), params, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Sessions retrieved", sessions, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// AddItem orders a product onto an open session
func (h *SessionHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.AddSessionItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	session, err := h.sessionService.AddItem(c.Request.Context(), id, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item added", session)
}

// UpdateItem changes quantity or note; qty zero removes the line
func (h *SessionHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var request validators.UpdateSessionItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	session, err := h.sessionService.UpdateItem(c.Request.Context(), id, itemID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item updated", session)
}

func (h *SessionHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	session, err := h.sessionService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Item removed", session)
}

// PreviewClose prices the session as if checked out now (or at endAt)
// without closing it.
func (h *SessionHandler) PreviewClose(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	endAt := time.Now()
	if endAtStr := c.Query("endAt"); endAtStr != "" {
		parsed, err := time.Parse(time.RFC3339, endAtStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid endAt, expected RFC3339")
			return
		}
		endAt = parsed
	}

	var request validators.PreviewCloseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	preview, err := h.sessionService.PreviewClose(c.Request.Context(), id, endAt, request.Codes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Close previewed", preview)
}

// Checkout closes the session into a bill and frees the table
func (h *SessionHandler) Checkout(c *gin.Context) {
	staffID, ok := currentStaffID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCheckout(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	bill, err := h.sessionService.Checkout(c.Request.Context(), id, &request, staffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Session checked out", bill)
}

// VoidSession abandons a session without producing a bill
func (h *SessionHandler) VoidSession(c *gin.Context) {
	staffID, ok := currentStaffID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.VoidSessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	session, err := h.sessionService.Void(c.Request.Context(), id, &request, staffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Session voided", session)
}
