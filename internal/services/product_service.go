package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type ProductService interface {
	Create(ctx context.Context, req *validators.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, params *utils.PaginationParams, category string, activeOnly bool) ([]*models.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productService struct {
	productRepo interfaces.ProductRepository
}

func NewProductService(productRepo interfaces.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) Create(ctx context.Context, req *validators.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Unit:     req.Unit,
		Active:   true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, params *utils.PaginationParams, category string, activeOnly bool) ([]*models.Product, int64, error) {
	return s.productRepo.List(ctx, params, category, activeOnly)
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, req *validators.UpdateProductRequest) (*models.Product, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.productRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Sold lines carry name and price snapshots, so deleting a product
	// never corrupts past bills. Deactivation is still the safer path for
	// seasonal items.
	return s.productRepo.Delete(ctx, id)
}
