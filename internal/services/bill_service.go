package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/pkg/logger"
)

type BillService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bill, error)
	List(ctx context.Context, params *utils.PaginationParams, from, to *time.Time, tableID *primitive.ObjectID) ([]*models.Bill, int64, error)

	// Pay settles an unpaid bill with the given method.
	Pay(ctx context.Context, id primitive.ObjectID, method models.PaymentMethod, staffID primitive.ObjectID) (*models.Bill, error)
}

type billService struct {
	billRepo interfaces.BillRepository
	audit    *logger.AuditLogger
	logger   *logger.Logger
}

func NewBillService(billRepo interfaces.BillRepository, audit *logger.AuditLogger, logger *logger.Logger) BillService {
	return &billService{
		billRepo: billRepo,
		audit:    audit,
		logger:   logger,
	}
}

func (s *billService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bill, error) {
	return s.billRepo.GetByID(ctx, id)
}

func (s *billService) List(ctx context.Context, params *utils.PaginationParams, from, to *time.Time, tableID *primitive.ObjectID) ([]*models.Bill, int64, error) {
	return s.billRepo.List(ctx, params, from, to, tableID)
}

func (s *billService) Pay(ctx context.Context, id primitive.ObjectID, method models.PaymentMethod, staffID primitive.ObjectID) (*models.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Paid {
		return nil, errors.New(utils.ErrBillAlreadyPaid)
	}

	now := time.Now()
	if err := s.billRepo.Update(ctx, id, map[string]interface{}{
		"payment_method": method,
		"paid":           true,
		"paid_at":        now,
		"staff":          staffID,
	}); err != nil {
		return nil, err
	}

	s.audit.LogPaymentAudit(id, bill.Total, utils.DefaultCurrency, string(method))
	s.logger.WithStaffID(staffID).WithFields(map[string]interface{}{
		"bill_id": id.Hex(),
		"method":  method,
		"total":   bill.Total,
	}).Info("Bill paid")

	bill.PaymentMethod = method
	bill.Paid = true
	bill.PaidAt = &now
	bill.Staff = &staffID

	return bill, nil
}
