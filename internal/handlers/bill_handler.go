package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type BillHandler struct {
	billService services.BillService
}

func NewBillHandler(billService services.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
	}
}

// ListBills filters by date range and table
func (h *BillHandler) ListBills(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	from, ok := parseTimeQuery(c, "from", false)
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to", true)
	if !ok {
		return
	}

	var tableID *primitive.ObjectID
	if tableStr := c.Query("table"); tableStr != "" {
		id, err := primitive.ObjectIDFromHex(tableStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid table")
			return
		}
		tableID = &id
	}

	bills, total, err := h.billService.List(c.Request.Context(), params, from, to, tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bills retrieved", bills, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BillHandler) GetBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bill retrieved", bill)
}

// PayBill settles a bill that was checked out without immediate payment
func (h *BillHandler) PayBill(c *gin.Context) {
	staffID, ok := currentStaffID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.PayBillRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	bill, err := h.billService.Pay(c.Request.Context(), id, models.PaymentMethod(request.PaymentMethod), staffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bill paid", bill)
}

// parseTimeQuery accepts RFC3339 or a plain date for range filters. A plain
// date on an upper bound covers that whole day.
func parseTimeQuery(c *gin.Context, name string, upperBound bool) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, true
	}
	if parsed, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		if upperBound {
			parsed = utils.EndOfDay(parsed)
		}
		return &parsed, true
	}

	utils.BadRequestResponse(c, "Invalid "+name+", expected RFC3339 or YYYY-MM-DD")
	return nil, false
}
