package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/promotion"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type fakePromotionService struct {
	createFn func(ctx context.Context, req *validators.CreatePromotionRequest) (*models.Promotion, error)
	updateFn func(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error)
}

func (f *fakePromotionService) Create(ctx context.Context, req *validators.CreatePromotionRequest) (*models.Promotion, error) {
	return f.createFn(ctx, req)
}

func (f *fakePromotionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	return nil, nil
}

func (f *fakePromotionService) List(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error) {
	return nil, 0, nil
}

func (f *fakePromotionService) Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakePromotionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakePromotionService) Preview(ctx context.Context, id primitive.ObjectID, req *validators.PreviewPromotionRequest) (*promotion.Result, error) {
	return nil, nil
}

func (f *fakePromotionService) Quote(ctx context.Context, req *validators.QuoteRequest) (*promotion.StackResult, error) {
	return nil, nil
}

func (f *fakePromotionService) Candidates(ctx context.Context, codes []string) ([]*models.Promotion, error) {
	return nil, nil
}

func patchPromotion(t *testing.T, svc *fakePromotionService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPatch, "/promotions/"+primitive.NewObjectID().Hex(), strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}

	NewPromotionHandler(svc).UpdatePromotion(c)
	return recorder
}

func TestUpdatePromotionRejectsCodeChange(t *testing.T) {
	svc := &fakePromotionService{
		updateFn: func(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error) {
			t.Fatal("service should not be reached when the body names code")
			return nil, nil
		},
	}

	recorder := patchPromotion(t, svc, `{"code":"NEWCODE","name":"Renamed"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestUpdatePromotionRejectsScopeChange(t *testing.T) {
	svc := &fakePromotionService{
		updateFn: func(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error) {
			t.Fatal("service should not be reached when the body names scope")
			return nil, nil
		},
	}

	recorder := patchPromotion(t, svc, `{"scope":"time"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestUpdatePromotionPassesThrough(t *testing.T) {
	want := &models.Promotion{Name: "Renamed"}
	svc := &fakePromotionService{
		updateFn: func(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error) {
			return want, nil
		},
	}

	recorder := patchPromotion(t, svc, `{"name":"Renamed"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRespondServiceErrorFlattensRuleErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	respondServiceError(c, promotion.ValidationErrors{
		{Field: "discount.value", Message: "percentage must be between 0 and 100"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "discount.value")
}
