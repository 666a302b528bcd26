package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/promotion"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
	"bidapos/pkg/logger"
	"bidapos/pkg/websocket"
)

type PromotionService interface {
	Create(ctx context.Context, req *validators.CreatePromotionRequest) (*models.Promotion, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error)
	List(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Preview evaluates one promotion against a hypothetical bill at a
	// hypothetical instant.
	Preview(ctx context.Context, id primitive.ObjectID, req *validators.PreviewPromotionRequest) (*promotion.Result, error)

	// Quote runs the stacking algorithm over the active promotions (or the
	// requested subset) against a bill snapshot.
	Quote(ctx context.Context, req *validators.QuoteRequest) (*promotion.StackResult, error)

	// Candidates resolves the promotion set a stacking run considers.
	Candidates(ctx context.Context, codes []string) ([]*models.Promotion, error)
}

type promotionService struct {
	promotionRepo interfaces.PromotionRepository
	wsHandler     *websocket.Handler
	logger        *logger.Logger
}

func NewPromotionService(promotionRepo interfaces.PromotionRepository, wsHandler *websocket.Handler, logger *logger.Logger) PromotionService {
	return &promotionService{
		promotionRepo: promotionRepo,
		wsHandler:     wsHandler,
		logger:        logger,
	}
}

func (s *promotionService) Create(ctx context.Context, req *validators.CreatePromotionRequest) (*models.Promotion, error) {
	promo := promotionFromCreate(req)

	if err := promotion.Validate(promo); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Create(ctx, promo); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"promotion_id": promo.ID.Hex(),
		"code":         promo.Code,
		"scope":        promo.Scope,
	}).Info("Promotion created")

	s.broadcastChange(promo)

	return promo, nil
}

func (s *promotionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	return s.promotionRepo.GetByID(ctx, id)
}

func (s *promotionService) List(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error) {
	return s.promotionRepo.List(ctx, params, activeOnly)
}

func (s *promotionService) Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdatePromotionRequest) (*models.Promotion, error) {
	existing, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updates := applyPromotionUpdate(&updated, req)
	if len(updates) == 0 {
		return existing, nil
	}

	// The merged document must still be a valid promotion before anything
	// is written.
	if err := promotion.Validate(&updated); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"promotion_id": id.Hex(),
		"code":         existing.Code,
	}).Info("Promotion updated")

	s.broadcastChange(&updated)

	return &updated, nil
}

func (s *promotionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.promotionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"promotion_id": id.Hex(),
		"code":         existing.Code,
	}).Warn("Promotion deleted")

	s.broadcastChange(existing)

	return nil
}

func (s *promotionService) Preview(ctx context.Context, id primitive.ObjectID, req *validators.PreviewPromotionRequest) (*promotion.Result, error) {
	promo, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	return promotion.Evaluate(promo, billContextFromRequest(&req.Bill), at)
}

func (s *promotionService) Quote(ctx context.Context, req *validators.QuoteRequest) (*promotion.StackResult, error) {
	candidates, err := s.Candidates(ctx, req.Codes)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	return promotion.Apply(candidates, billContextFromRequest(&req.Bill), at)
}

// Candidates returns every active promotion when codes is empty, otherwise
// exactly the named ones. A code that resolves to nothing is an error, not
// a silent skip.
func (s *promotionService) Candidates(ctx context.Context, codes []string) ([]*models.Promotion, error) {
	if len(codes) == 0 {
		return s.promotionRepo.GetActive(ctx)
	}

	promos, err := s.promotionRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	if len(promos) != len(codes) {
		return nil, errors.New(utils.ErrPromotionNotFound)
	}
	return promos, nil
}

func (s *promotionService) broadcastChange(promo *models.Promotion) {
	if s.wsHandler == nil {
		return
	}
	s.wsHandler.BroadcastFloorEvent(utils.EventPromotionChanged, map[string]interface{}{
		"promotion_id": promo.ID.Hex(),
		"code":         promo.Code,
		"active":       promo.Active,
	})
}

// Request mapping

func promotionFromCreate(req *validators.CreatePromotionRequest) *models.Promotion {
	return &models.Promotion{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Scope:       models.PromotionScope(req.Scope),
		ApplyOrder:  req.ApplyOrder,
		Active:      req.Active,
		Stackable:   req.Stackable,
		Discount:    discountFromRequest(&req.Discount),
		BillRule:    billRuleFromRequest(req.BillRule),
		TimeRule:    timeRuleFromRequest(req.TimeRule),
		ProductRule: productRuleFromRequest(req.ProductRule),
	}
}

// applyPromotionUpdate merges the request into the promotion and returns the
// mongo update document. Scope and code are deliberately untouchable.
func applyPromotionUpdate(promo *models.Promotion, req *validators.UpdatePromotionRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Name != nil {
		promo.Name = *req.Name
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		promo.Description = *req.Description
		updates["description"] = *req.Description
	}
	if req.ApplyOrder != nil {
		promo.ApplyOrder = *req.ApplyOrder
		updates["apply_order"] = *req.ApplyOrder
	}
	if req.Active != nil {
		promo.Active = *req.Active
		updates["active"] = *req.Active
	}
	if req.Stackable != nil {
		promo.Stackable = *req.Stackable
		updates["stackable"] = *req.Stackable
	}
	if req.Discount != nil {
		promo.Discount = discountFromRequest(req.Discount)
		updates["discount"] = promo.Discount
	}
	if req.BillRule != nil {
		promo.BillRule = billRuleFromRequest(req.BillRule)
		updates["bill_rule"] = promo.BillRule
	}
	if req.TimeRule != nil {
		promo.TimeRule = timeRuleFromRequest(req.TimeRule)
		updates["time_rule"] = promo.TimeRule
	}
	if req.ProductRule != nil {
		promo.ProductRule = productRuleFromRequest(req.ProductRule)
		updates["product_rule"] = promo.ProductRule
	}

	return updates
}

func discountFromRequest(req *validators.DiscountRequest) models.Discount {
	return models.Discount{
		Type:      models.DiscountType(req.Type),
		Value:     req.Value,
		ApplyTo:   req.ApplyTo,
		MaxAmount: req.MaxAmount,
	}
}

func billRuleFromRequest(req *validators.BillRuleRequest) *models.BillRule {
	if req == nil {
		return nil
	}
	return &models.BillRule{
		MinSubtotal:      req.MinSubtotal,
		MinServiceAmount: req.MinServiceAmount,
		MinPlayMinutes:   req.MinPlayMinutes,
	}
}

func timeRuleFromRequest(req *validators.TimeRuleRequest) *models.TimeRule {
	if req == nil {
		return nil
	}
	rule := &models.TimeRule{
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
		DaysOfWeek: req.DaysOfWeek,
		MinMinutes: req.MinMinutes,
	}
	for _, tr := range req.TimeRanges {
		rule.TimeRanges = append(rule.TimeRanges, models.TimeRange{From: tr.From, To: tr.To})
	}
	return rule
}

func productRuleFromRequest(req *validators.ProductRuleRequest) *models.ProductRule {
	if req == nil {
		return nil
	}
	rule := &models.ProductRule{
		Categories: req.Categories,
		Products:   req.Products,
	}
	for _, entry := range req.Combo {
		rule.Combo = append(rule.Combo, models.ComboEntry{Product: entry.Product, Qty: entry.Qty})
	}
	return rule
}

func billContextFromRequest(req *validators.BillContextRequest) *promotion.BillContext {
	bill := &promotion.BillContext{
		Subtotal:      req.Subtotal,
		PlayAmount:    req.PlayAmount,
		ServiceAmount: req.ServiceAmount,
		PlayMinutes:   req.PlayMinutes,
		Amounts:       req.Amounts,
	}
	// An empty-but-present items array means "no lines", which product rules
	// treat differently from an absent one.
	if req.Items != nil {
		bill.Items = []promotion.LineItem{}
	}
	for _, item := range req.Items {
		bill.Items = append(bill.Items, promotion.LineItem{
			Product:  item.Product,
			Category: item.Category,
			Qty:      item.Qty,
		})
	}
	return bill
}
