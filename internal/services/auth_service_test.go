package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
	"bidapos/pkg/logger"
)

type fakeStaffRepo struct {
	createFn          func(ctx context.Context, staff *models.Staff) error
	getByIDFn         func(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	getByUsernameFn   func(ctx context.Context, username string) (*models.Staff, error)
	updateFn          func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	deleteFn          func(ctx context.Context, id primitive.ObjectID) error
	listFn            func(ctx context.Context, params *utils.PaginationParams) ([]*models.Staff, int64, error)
	updateLastLoginFn func(ctx context.Context, id primitive.ObjectID) error
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *models.Staff) error {
	return f.createFn(ctx, staff)
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeStaffRepo) GetByUsername(ctx context.Context, username string) (*models.Staff, error) {
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeStaffRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return f.updateFn(ctx, id, updates)
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeStaffRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Staff, int64, error) {
	return f.listFn(ctx, params)
}

func (f *fakeStaffRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return f.updateLastLoginFn(ctx, id)
}

func testAuditLogger(t *testing.T) *logger.AuditLogger {
	t.Helper()
	audit, err := logger.NewAuditLogger(&logger.Config{Level: logger.ErrorLevel})
	require.NoError(t, err)
	return audit
}

func activeStaff(t *testing.T, password string) *models.Staff {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &models.Staff{
		ID:           primitive.NewObjectID(),
		Name:         "Front Desk",
		Username:     "frontdesk",
		PasswordHash: hash,
		Role:         models.RoleStaff,
		Active:       true,
	}
}

func TestLoginSuccess(t *testing.T) {
	staff := activeStaff(t, "opensesame")
	lastLoginRecorded := false
	repo := &fakeStaffRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.Staff, error) {
			assert.Equal(t, "frontdesk", username)
			return staff, nil
		},
		updateLastLoginFn: func(ctx context.Context, id primitive.ObjectID) error {
			lastLoginRecorded = true
			return nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	resp, err := svc.Login(context.Background(), &validators.LoginRequest{
		Username: "frontdesk",
		Password: "opensesame",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)

	assert.Equal(t, staff.ID, resp.Staff.ID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.True(t, lastLoginRecorded)

	claims, err := utils.ValidateToken(resp.Tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, "staff", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	staff := activeStaff(t, "opensesame")
	repo := &fakeStaffRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.Staff, error) {
			return staff, nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	_, err := svc.Login(context.Background(), &validators.LoginRequest{
		Username: "frontdesk",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrInvalidCredentials, err.Error())
}

func TestLoginUnknownUsername(t *testing.T) {
	repo := &fakeStaffRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.Staff, error) {
			return nil, errors.New(utils.ErrStaffNotFound)
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	_, err := svc.Login(context.Background(), &validators.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrInvalidCredentials, err.Error())
}

func TestLoginInactiveStaff(t *testing.T) {
	staff := activeStaff(t, "opensesame")
	staff.Active = false
	repo := &fakeStaffRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.Staff, error) {
			return staff, nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	_, err := svc.Login(context.Background(), &validators.LoginRequest{
		Username: "frontdesk",
		Password: "opensesame",
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrInvalidCredentials, err.Error())
}

func TestRefreshTokenDeactivatedStaff(t *testing.T) {
	staff := activeStaff(t, "opensesame")
	tokens, err := utils.GenerateTokenPair(staff.ID, staff.Username, string(staff.Role), "test-secret")
	require.NoError(t, err)

	staff.Active = false
	repo := &fakeStaffRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
			return staff, nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, utils.ErrUnauthorized, err.Error())
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	staff := activeStaff(t, "opensesame")
	tokens, err := utils.GenerateTokenPair(staff.ID, staff.Username, string(staff.Role), "test-secret")
	require.NoError(t, err)

	repo := &fakeStaffRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
			t.Fatal("an access token must not reach the staff lookup")
			return nil, nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	require.Error(t, err)
	assert.Equal(t, utils.ErrInvalidToken, err.Error())
}

func TestRefreshTokenGarbage(t *testing.T) {
	svc := NewAuthService(&fakeStaffRepo{}, nil, "test-secret", testAuditLogger(t), testLogger(t))

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, utils.ErrInvalidToken, err.Error())
}

func TestCreateStaffHashesPassword(t *testing.T) {
	var created *models.Staff
	repo := &fakeStaffRepo{
		createFn: func(ctx context.Context, staff *models.Staff) error {
			staff.ID = primitive.NewObjectID()
			created = staff
			return nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	staff, err := svc.CreateStaff(context.Background(), &validators.CreateStaffRequest{
		Name:     "New Hire",
		Username: "newhire",
		Password: "changeme1",
		Role:     "staff",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.True(t, staff.Active)
	assert.NotEqual(t, "changeme1", staff.PasswordHash)
	assert.True(t, utils.VerifyPassword("changeme1", staff.PasswordHash))
}

func TestUpdateStaffPartial(t *testing.T) {
	id := primitive.NewObjectID()
	var applied map[string]interface{}
	repo := &fakeStaffRepo{
		updateFn: func(ctx context.Context, gotID primitive.ObjectID, updates map[string]interface{}) error {
			assert.Equal(t, id, gotID)
			applied = updates
			return nil
		},
		getByIDFn: func(ctx context.Context, gotID primitive.ObjectID) (*models.Staff, error) {
			return &models.Staff{ID: gotID}, nil
		},
	}
	svc := NewAuthService(repo, nil, "test-secret", testAuditLogger(t), testLogger(t))

	name := "Renamed"
	active := false
	_, err := svc.UpdateStaff(context.Background(), id, &validators.UpdateStaffRequest{
		Name:   &name,
		Active: &active,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"name": "Renamed", "active": false}, applied)
}
