package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/promotion"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

// parseIDParam reads an ObjectID path parameter, replying 400 on garbage.
func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentStaffID pulls the authenticated staff ID set by the auth middleware.
func currentStaffID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("staff_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	staffID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return staffID, true
}

// respondValidationErrors flattens validator output into the error envelope.
func respondValidationErrors(c *gin.Context, errs validators.ValidationErrors) {
	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	utils.ValidationErrorResponse(c, details)
}

// respondServiceError maps well-known service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var verrs promotion.ValidationErrors
	if errors.As(err, &verrs) {
		utils.ValidationErrorResponse(c, verrs.Fields())
		return
	}

	switch err.Error() {
	case utils.ErrPromotionNotFound, utils.ErrTableNotFound, utils.ErrSessionNotFound,
		utils.ErrBillNotFound, utils.ErrStaffNotFound, utils.ErrNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case utils.ErrTableOccupied, utils.ErrSessionNotOpen, utils.ErrBillAlreadyPaid,
		utils.ErrPromotionCodeTaken, utils.ErrPromotionImmutable, utils.ErrStaffExists:
		utils.ConflictResponse(c, err.Error())
	case utils.ErrInvalidCredentials, utils.ErrInvalidToken, utils.ErrTokenExpired:
		utils.UnauthorizedResponse(c)
	case utils.ErrForbidden:
		utils.ForbiddenResponse(c)
	default:
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "OPERATION_FAILED", err.Error())
	}
}
