package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
	"bidapos/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req *validators.LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)

	// Staff management (admin only)
	CreateStaff(ctx context.Context, req *validators.CreateStaffRequest) (*models.Staff, error)
	GetStaff(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	ListStaff(ctx context.Context, params *utils.PaginationParams) ([]*models.Staff, int64, error)
	UpdateStaff(ctx context.Context, id primitive.ObjectID, req *validators.UpdateStaffRequest) (*models.Staff, error)
	DeleteStaff(ctx context.Context, id primitive.ObjectID) error
}

type AuthResponse struct {
	Staff  *models.Staff    `json:"staff"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	staffRepo interfaces.StaffRepository
	cache     CacheService
	jwtSecret string
	audit     *logger.AuditLogger
	logger    *logger.Logger
}

func NewAuthService(
	staffRepo interfaces.StaffRepository,
	cache CacheService,
	jwtSecret string,
	audit *logger.AuditLogger,
	logger *logger.Logger,
) AuthService {
	return &authService{
		staffRepo: staffRepo,
		cache:     cache,
		jwtSecret: jwtSecret,
		audit:     audit,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *validators.LoginRequest) (*AuthResponse, error) {
	if s.cache != nil {
		allowed, err := s.cache.CheckRateLimit(ctx, "login:"+req.Username, utils.LoginRateLimit, time.Minute)
		if err != nil {
			s.logger.WithError(err).Warn("Login rate limit check failed")
		} else if !allowed {
			return nil, errors.New("too many login attempts, try again later")
		}
	}

	staff, err := s.staffRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		s.audit.LogAuthEvent("login_failed", nil, "", "", false)
		return nil, errors.New(utils.ErrInvalidCredentials)
	}

	if !staff.Active {
		s.audit.LogAuthEvent("login_inactive", &staff.ID, "", "", false)
		return nil, errors.New(utils.ErrInvalidCredentials)
	}

	if !utils.VerifyPassword(req.Password, staff.PasswordHash) {
		s.audit.LogAuthEvent("login_failed", &staff.ID, "", "", false)
		return nil, errors.New(utils.ErrInvalidCredentials)
	}

	tokens, err := utils.GenerateTokenPair(staff.ID, staff.Username, string(staff.Role), s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.staffRepo.UpdateLastLogin(ctx, staff.ID); err != nil {
		s.logger.WithError(err).WithStaffID(staff.ID).Warn("Failed to record last login")
	}

	s.audit.LogAuthEvent("login", &staff.ID, "", "", true)

	return &AuthResponse{Staff: staff, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, errors.New(utils.ErrInvalidToken)
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		return nil, errors.New(utils.ErrInvalidToken)
	}

	// Re-read the staff record so a deactivated account cannot keep
	// refreshing its way back in.
	staff, err := s.staffRepo.GetByID(ctx, claims.StaffID)
	if err != nil {
		return nil, errors.New(utils.ErrInvalidToken)
	}
	if !staff.Active {
		return nil, errors.New(utils.ErrUnauthorized)
	}

	tokens, err := utils.GenerateTokenPair(staff.ID, staff.Username, string(staff.Role), s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthResponse{Staff: staff, Tokens: tokens}, nil
}

func (s *authService) CreateStaff(ctx context.Context, req *validators.CreateStaffRequest) (*models.Staff, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.Staff{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.StaffRole(req.Role),
		Active:       true,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	s.audit.LogAction("staff_created", "staff", nil, map[string]interface{}{
		"target_id": staff.ID.Hex(),
		"username":  staff.Username,
		"role":      staff.Role,
	})

	return staff, nil
}

func (s *authService) GetStaff(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

func (s *authService) ListStaff(ctx context.Context, params *utils.PaginationParams) ([]*models.Staff, int64, error) {
	return s.staffRepo.List(ctx, params)
}

func (s *authService) UpdateStaff(ctx context.Context, id primitive.ObjectID, req *validators.UpdateStaffRequest) (*models.Staff, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = hash
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.staffRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.staffRepo.GetByID(ctx, id)
}

func (s *authService) DeleteStaff(ctx context.Context, id primitive.ObjectID) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.LogAction("staff_deleted", "staff", nil, map[string]interface{}{
		"target_id": id.Hex(),
	})
	return nil
}
