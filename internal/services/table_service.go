package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
	"bidapos/pkg/logger"
	"bidapos/pkg/websocket"
)

type TableService interface {
	Create(ctx context.Context, req *validators.CreateTableRequest) (*models.Table, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	List(ctx context.Context, params *utils.PaginationParams, areaID *primitive.ObjectID, status models.TableStatus) ([]*models.Table, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdateTableRequest) (*models.Table, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	SetStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus) (*models.Table, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Table, error)
	SetRate(ctx context.Context, id primitive.ObjectID, ratePerHour float64) (*models.Table, error)
	Reorder(ctx context.Context, req *validators.ReorderTablesRequest) error
}

type tableService struct {
	tableRepo   interfaces.TableRepository
	sessionRepo interfaces.SessionRepository
	wsHandler   *websocket.Handler
	logger      *logger.Logger
}

func NewTableService(tableRepo interfaces.TableRepository, sessionRepo interfaces.SessionRepository, wsHandler *websocket.Handler, logger *logger.Logger) TableService {
	return &tableService{
		tableRepo:   tableRepo,
		sessionRepo: sessionRepo,
		wsHandler:   wsHandler,
		logger:      logger,
	}
}

func (s *tableService) Create(ctx context.Context, req *validators.CreateTableRequest) (*models.Table, error) {
	table := &models.Table{
		Name:        req.Name,
		RatePerHour: req.RatePerHour,
		Status:      models.TableAvailable,
		Active:      true,
		Note:        req.Note,
	}

	if req.AreaID != nil {
		areaID, err := primitive.ObjectIDFromHex(*req.AreaID)
		if err != nil {
			return nil, errors.New("invalid area id")
		}
		table.Area = &areaID
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}

	s.logger.WithTableID(table.ID).Infof("Table %q created", table.Name)

	return table, nil
}

func (s *tableService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	return s.tableRepo.GetByID(ctx, id)
}

func (s *tableService) List(ctx context.Context, params *utils.PaginationParams, areaID *primitive.ObjectID, status models.TableStatus) ([]*models.Table, int64, error) {
	return s.tableRepo.List(ctx, params, areaID, status)
}

func (s *tableService) Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdateTableRequest) (*models.Table, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AreaID != nil {
		areaID, err := primitive.ObjectIDFromHex(*req.AreaID)
		if err != nil {
			return nil, errors.New("invalid area id")
		}
		updates["area"] = areaID
	}
	if req.RatePerHour != nil {
		updates["rate_per_hour"] = *req.RatePerHour
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) > 0 {
		if err := s.tableRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.tableRepo.GetByID(ctx, id)
}

func (s *tableService) Delete(ctx context.Context, id primitive.ObjectID) error {
	open, err := s.sessionRepo.GetOpenByTable(ctx, id)
	if err != nil {
		return err
	}
	if open != nil {
		return errors.New(utils.ErrTableOccupied)
	}

	return s.tableRepo.Delete(ctx, id)
}

func (s *tableService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus) (*models.Table, error) {
	if !models.ValidTableStatus(status) {
		return nil, errors.New("invalid table status")
	}

	// A table with a running session cannot be flipped away from occupied
	// by hand; checkout and void own that transition.
	open, err := s.sessionRepo.GetOpenByTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if open != nil && status != models.TableOccupied {
		return nil, errors.New(utils.ErrTableOccupied)
	}

	if err := s.tableRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.broadcast(id, map[string]interface{}{"status": string(status)})

	return s.tableRepo.GetByID(ctx, id)
}

func (s *tableService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Table, error) {
	if !active {
		open, err := s.sessionRepo.GetOpenByTable(ctx, id)
		if err != nil {
			return nil, err
		}
		if open != nil {
			return nil, errors.New(utils.ErrTableOccupied)
		}
	}

	if err := s.tableRepo.Update(ctx, id, map[string]interface{}{"active": active}); err != nil {
		return nil, err
	}

	s.broadcast(id, map[string]interface{}{"active": active})

	return s.tableRepo.GetByID(ctx, id)
}

func (s *tableService) SetRate(ctx context.Context, id primitive.ObjectID, ratePerHour float64) (*models.Table, error) {
	if ratePerHour <= 0 {
		return nil, errors.New("rate must be positive")
	}

	// Running sessions keep their pricing snapshot; the new rate only
	// affects sessions opened from now on.
	if err := s.tableRepo.Update(ctx, id, map[string]interface{}{"rate_per_hour": ratePerHour}); err != nil {
		return nil, err
	}

	return s.tableRepo.GetByID(ctx, id)
}

// Reorder saves the floor layout positions drawn by the admin screen.
func (s *tableService) Reorder(ctx context.Context, req *validators.ReorderTablesRequest) error {
	orders := make(map[primitive.ObjectID]int, len(req.Items))
	for _, item := range req.Items {
		id, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			return errors.New("invalid table id")
		}
		orders[id] = item.Order
	}

	if err := s.tableRepo.Reorder(ctx, orders); err != nil {
		return err
	}

	if s.wsHandler != nil {
		s.wsHandler.BroadcastFloorEvent(utils.EventTablesReordered, map[string]interface{}{
			"count": len(orders),
		})
	}

	return nil
}

func (s *tableService) broadcast(tableID primitive.ObjectID, data map[string]interface{}) {
	if s.wsHandler == nil {
		return
	}
	s.wsHandler.SendTableUpdate(tableID, utils.EventTableUpdated, data)
}
