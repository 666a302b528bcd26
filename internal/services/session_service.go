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

// BillPreview is what preview-close returns: the bill as it would be
// written plus the stacking outcome that produced its discounts.
type BillPreview struct {
	Bill  *models.Bill           `json:"bill"`
	Stack *promotion.StackResult `json:"stack"`
}

type SessionService interface {
	Open(ctx context.Context, req *validators.OpenSessionRequest, staffID primitive.ObjectID) (*models.Session, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	List(ctx context.Context, params *utils.PaginationParams, status models.SessionStatus) ([]*models.Session, int64, error)

	AddItem(ctx context.Context, sessionID primitive.ObjectID, req *validators.AddSessionItemRequest) (*models.Session, error)
	UpdateItem(ctx context.Context, sessionID, itemID primitive.ObjectID, req *validators.UpdateSessionItemRequest) (*models.Session, error)
	RemoveItem(ctx context.Context, sessionID, itemID primitive.ObjectID) (*models.Session, error)

	// PreviewClose prices the session as if it were checked out at endAt
	// without writing anything.
	PreviewClose(ctx context.Context, sessionID primitive.ObjectID, endAt time.Time, codes []string) (*BillPreview, error)

	// Checkout closes the session into a bill, applies promotions, frees
	// the table.
	Checkout(ctx context.Context, sessionID primitive.ObjectID, req *validators.CheckoutRequest, staffID primitive.ObjectID) (*models.Bill, error)

	Void(ctx context.Context, sessionID primitive.ObjectID, req *validators.VoidSessionRequest, staffID primitive.ObjectID) (*models.Session, error)
}

type sessionService struct {
	sessionRepo  interfaces.SessionRepository
	tableRepo    interfaces.TableRepository
	productRepo  interfaces.ProductRepository
	billRepo     interfaces.BillRepository
	promotionSvc PromotionService
	wsHandler    *websocket.Handler
	audit        *logger.AuditLogger
	logger       *logger.Logger
}

func NewSessionService(
	sessionRepo interfaces.SessionRepository,
	tableRepo interfaces.TableRepository,
	productRepo interfaces.ProductRepository,
	billRepo interfaces.BillRepository,
	promotionSvc PromotionService,
	wsHandler *websocket.Handler,
	audit *logger.AuditLogger,
	logger *logger.Logger,
) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		tableRepo:    tableRepo,
		productRepo:  productRepo,
		billRepo:     billRepo,
		promotionSvc: promotionSvc,
		wsHandler:    wsHandler,
		audit:        audit,
		logger:       logger,
	}
}

func (s *sessionService) Open(ctx context.Context, req *validators.OpenSessionRequest, staffID primitive.ObjectID) (*models.Session, error) {
	tableID, err := primitive.ObjectIDFromHex(req.TableID)
	if err != nil {
		return nil, errors.New(utils.ErrTableNotFound)
	}

	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if !table.Active || table.Status == models.TableMaintenance {
		return nil, errors.New("table is not available for play")
	}

	open, err := s.sessionRepo.GetOpenByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, errors.New(utils.ErrTableOccupied)
	}

	session := &models.Session{
		Table:   tableID,
		Staff:   &staffID,
		Status:  models.SessionOpen,
		StartAt: time.Now(),
		PricingSnapshot: models.PricingSnapshot{
			RatePerHour: table.RatePerHour,
		},
		Note: req.Note,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.tableRepo.UpdateStatus(ctx, tableID, models.TableOccupied); err != nil {
		return nil, err
	}

	s.logger.WithSessionID(session.ID).WithTableID(tableID).LogSessionEvent(session.ID, "opened", map[string]interface{}{
		"rate_per_hour": table.RatePerHour,
	})

	s.broadcastTable(tableID, utils.EventSessionOpened, map[string]interface{}{
		"session_id": session.ID.Hex(),
		"status":     string(models.TableOccupied),
	})

	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context, params *utils.PaginationParams, status models.SessionStatus) ([]*models.Session, int64, error) {
	return s.sessionRepo.List(ctx, params, status)
}

func (s *sessionService) AddItem(ctx context.Context, sessionID primitive.ObjectID, req *validators.AddSessionItemRequest) (*models.Session, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, errors.New("product not found")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, errors.New("product is not for sale")
	}

	// Name and price are snapshotted so later catalog edits leave running
	// sessions untouched.
	item := &models.SessionItem{
		Product:       product.ID,
		NameSnapshot:  product.Name,
		PriceSnapshot: product.Price,
		Category:      product.Category,
		Qty:           req.Qty,
		Note:          req.Note,
	}

	if err := s.sessionRepo.AddItem(ctx, sessionID, item); err != nil {
		return nil, err
	}

	s.broadcastTable(session.Table, utils.EventSessionUpdated, map[string]interface{}{
		"session_id": sessionID.Hex(),
	})

	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *sessionService) UpdateItem(ctx context.Context, sessionID, itemID primitive.ObjectID, req *validators.UpdateSessionItemRequest) (*models.Session, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Dropping the quantity to zero removes the line.
	if req.Qty != nil && *req.Qty == 0 {
		return s.RemoveItem(ctx, sessionID, itemID)
	}

	updates := make(map[string]interface{})
	if req.Qty != nil {
		updates["qty"] = *req.Qty
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if len(updates) == 0 {
		return session, nil
	}

	if err := s.sessionRepo.UpdateItem(ctx, sessionID, itemID, updates); err != nil {
		return nil, err
	}

	s.broadcastTable(session.Table, utils.EventSessionUpdated, map[string]interface{}{
		"session_id": sessionID.Hex(),
	})

	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *sessionService) RemoveItem(ctx context.Context, sessionID, itemID primitive.ObjectID) (*models.Session, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.RemoveItem(ctx, sessionID, itemID); err != nil {
		return nil, err
	}

	s.broadcastTable(session.Table, utils.EventSessionUpdated, map[string]interface{}{
		"session_id": sessionID.Hex(),
	})

	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *sessionService) PreviewClose(ctx context.Context, sessionID primitive.ObjectID, endAt time.Time, codes []string) (*BillPreview, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if endAt.IsZero() {
		endAt = time.Now()
	}

	table, err := s.tableRepo.GetByID(ctx, session.Table)
	if err != nil {
		return nil, err
	}

	bill := buildBill(session, table, endAt)

	stack, err := s.applyPromotions(ctx, bill, codes, endAt)
	if err != nil {
		return nil, err
	}
	bill.Recalculate()

	return &BillPreview{Bill: bill, Stack: stack}, nil
}

func (s *sessionService) Checkout(ctx context.Context, sessionID primitive.ObjectID, req *validators.CheckoutRequest, staffID primitive.ObjectID) (*models.Bill, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetByID(ctx, session.Table)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bill := buildBill(session, table, now)
	bill.Surcharge = req.Surcharge
	bill.Staff = &staffID
	bill.Note = req.Note

	stack, err := s.applyPromotions(ctx, bill, req.Codes, now)
	if err != nil {
		return nil, err
	}
	bill.Recalculate()

	if req.PaymentMethod != "" {
		bill.PaymentMethod = models.PaymentMethod(req.PaymentMethod)
		bill.Paid = true
		bill.PaidAt = &now
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Update(ctx, sessionID, map[string]interface{}{
		"status": models.SessionClosed,
		"end_at": now,
	}); err != nil {
		return nil, err
	}

	if err := s.tableRepo.UpdateStatus(ctx, session.Table, models.TableAvailable); err != nil {
		return nil, err
	}

	for _, app := range stack.Applications {
		s.logger.LogPromotionApplied(bill.ID, app.Code, app.Amount)
	}
	if bill.Paid {
		s.audit.LogPaymentAudit(bill.ID, bill.Total, utils.DefaultCurrency, string(bill.PaymentMethod))
	}
	playedMinutes := 0
	if m := bill.PlayMinutes(); m != nil {
		playedMinutes = *m
	}
	s.logger.WithSessionID(sessionID).LogSessionEvent(sessionID, "checked_out", map[string]interface{}{
		"bill_id":  bill.ID.Hex(),
		"total":    bill.Total,
		"paid":     bill.Paid,
		"duration": utils.FormatPlayDuration(playedMinutes),
	})

	s.broadcastTable(session.Table, utils.EventSessionClosed, map[string]interface{}{
		"session_id": sessionID.Hex(),
		"bill_id":    bill.ID.Hex(),
		"status":     string(models.TableAvailable),
	})

	return bill, nil
}

func (s *sessionService) Void(ctx context.Context, sessionID primitive.ObjectID, req *validators.VoidSessionRequest, staffID primitive.ObjectID) (*models.Session, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.sessionRepo.Update(ctx, sessionID, map[string]interface{}{
		"status":      models.SessionVoid,
		"end_at":      now,
		"void_reason": req.Reason,
	}); err != nil {
		return nil, err
	}

	if err := s.tableRepo.UpdateStatus(ctx, session.Table, models.TableAvailable); err != nil {
		return nil, err
	}

	s.audit.LogVoid(sessionID, req.Reason, &staffID)
	s.logger.WithStaffID(staffID).LogSessionEvent(sessionID, "voided", map[string]interface{}{
		"reason": req.Reason,
	})

	s.broadcastTable(session.Table, utils.EventSessionVoided, map[string]interface{}{
		"session_id": sessionID.Hex(),
		"status":     string(models.TableAvailable),
	})

	return s.sessionRepo.GetByID(ctx, sessionID)
}

func (s *sessionService) openSession(ctx context.Context, sessionID primitive.ObjectID) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionOpen {
		return nil, errors.New(utils.ErrSessionNotOpen)
	}
	return session, nil
}

// applyPromotions runs the stacking engine against the bill and records the
// outcome on it. The bill context it hands over mirrors the bill exactly:
// product lines carry the product id and category the rules match on.
func (s *sessionService) applyPromotions(ctx context.Context, bill *models.Bill, codes []string, at time.Time) (*promotion.StackResult, error) {
	candidates, err := s.promotionSvc.Candidates(ctx, codes)
	if err != nil {
		return nil, err
	}

	stack, err := promotion.Apply(candidates, billToContext(bill), at)
	if err != nil {
		return nil, err
	}

	bill.Discounts = make([]models.BillDiscount, 0, len(stack.Applications))
	for _, app := range stack.Applications {
		bill.Discounts = append(bill.Discounts, models.BillDiscount{
			Promotion: app.PromotionID,
			Code:      app.Code,
			Amount:    app.Amount,
		})
	}

	return stack, nil
}

// buildBill turns a session into an unpaid bill draft: one play line priced
// from the pinned rate, one line per ordered product.
func buildBill(session *models.Session, table *models.Table, endAt time.Time) *models.Bill {
	bill := &models.Bill{
		Session:   session.ID,
		Table:     session.Table,
		TableName: table.Name,
		Area:      table.Area,
		Items:     []models.BillItem{},
	}

	minutes := session.PlayedMinutes(endAt)
	if minutes > 0 {
		bill.Items = append(bill.Items, models.BillItem{
			Type:        models.BillItemPlay,
			Minutes:     minutes,
			RatePerHour: session.PricingSnapshot.RatePerHour,
			Amount:      models.PlayAmount(minutes, session.PricingSnapshot.RatePerHour),
		})
	}

	for _, item := range session.Items {
		productID := item.Product
		bill.Items = append(bill.Items, models.BillItem{
			Type:          models.BillItemProduct,
			ProductID:     &productID,
			Category:      item.Category,
			NameSnapshot:  item.NameSnapshot,
			PriceSnapshot: item.PriceSnapshot,
			Qty:           item.Qty,
			Amount:        item.PriceSnapshot * float64(item.Qty),
			Note:          item.Note,
		})
	}

	bill.Recalculate()
	return bill
}

// billToContext snapshots a bill for the promotion evaluator.
func billToContext(bill *models.Bill) *promotion.BillContext {
	ctx := &promotion.BillContext{
		Subtotal:      bill.Subtotal,
		PlayAmount:    bill.PlayTotal(),
		ServiceAmount: bill.ServiceTotal(),
		PlayMinutes:   bill.PlayMinutes(),
		Items:         []promotion.LineItem{},
	}

	for _, item := range bill.Items {
		if item.Type != models.BillItemProduct || item.ProductID == nil {
			continue
		}
		ctx.Items = append(ctx.Items, promotion.LineItem{
			Product:  item.ProductID.Hex(),
			Category: item.Category,
			Qty:      item.Qty,
		})
	}

	return ctx
}

func (s *sessionService) broadcastTable(tableID primitive.ObjectID, eventType string, data map[string]interface{}) {
	if s.wsHandler == nil {
		return
	}
	s.wsHandler.SendTableUpdate(tableID, eventType, data)
}
