package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type AreaService interface {
	Create(ctx context.Context, req *validators.CreateAreaRequest) (*models.Area, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Area, error)
	List(ctx context.Context) ([]*models.Area, error)
	Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdateAreaRequest) (*models.Area, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type areaService struct {
	areaRepo  interfaces.AreaRepository
	tableRepo interfaces.TableRepository
}

func NewAreaService(areaRepo interfaces.AreaRepository, tableRepo interfaces.TableRepository) AreaService {
	return &areaService{
		areaRepo:  areaRepo,
		tableRepo: tableRepo,
	}
}

func (s *areaService) Create(ctx context.Context, req *validators.CreateAreaRequest) (*models.Area, error) {
	area := &models.Area{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}

	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}

	return area, nil
}

func (s *areaService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Area, error) {
	return s.areaRepo.GetByID(ctx, id)
}

func (s *areaService) List(ctx context.Context) ([]*models.Area, error) {
	return s.areaRepo.List(ctx)
}

func (s *areaService) Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdateAreaRequest) (*models.Area, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}

	if len(updates) > 0 {
		if err := s.areaRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.areaRepo.GetByID(ctx, id)
}

func (s *areaService) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Refuse to orphan tables
	params := &utils.PaginationParams{Page: 1, PageSize: 1, Sort: "created_at", Order: "desc"}
	_, total, err := s.tableRepo.List(ctx, params, &id, "")
	if err != nil {
		return err
	}
	if total > 0 {
		return errors.New("area still has tables")
	}

	return s.areaRepo.Delete(ctx, id)
}
