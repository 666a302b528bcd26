package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type fakeTableRepo struct {
	createFn       func(ctx context.Context, table *models.Table) error
	getByIDFn      func(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	getByNameFn    func(ctx context.Context, name string) (*models.Table, error)
	updateFn       func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	deleteFn       func(ctx context.Context, id primitive.ObjectID) error
	listFn         func(ctx context.Context, params *utils.PaginationParams, areaID *primitive.ObjectID, status models.TableStatus) ([]*models.Table, int64, error)
	updateStatusFn func(ctx context.Context, id primitive.ObjectID, status models.TableStatus) error
	reorderFn      func(ctx context.Context, orders map[primitive.ObjectID]int) error
}

func (f *fakeTableRepo) Create(ctx context.Context, table *models.Table) error {
	return f.createFn(ctx, table)
}

func (f *fakeTableRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeTableRepo) GetByName(ctx context.Context, name string) (*models.Table, error) {
	return f.getByNameFn(ctx, name)
}

func (f *fakeTableRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return f.updateFn(ctx, id, updates)
}

func (f *fakeTableRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeTableRepo) List(ctx context.Context, params *utils.PaginationParams, areaID *primitive.ObjectID, status models.TableStatus) ([]*models.Table, int64, error) {
	return f.listFn(ctx, params, areaID, status)
}

func (f *fakeTableRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus) error {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeTableRepo) Reorder(ctx context.Context, orders map[primitive.ObjectID]int) error {
	return f.reorderFn(ctx, orders)
}

func TestReorderWritesAllPositions(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	var got map[primitive.ObjectID]int
	repo := &fakeTableRepo{
		reorderFn: func(ctx context.Context, orders map[primitive.ObjectID]int) error {
			got = orders
			return nil
		},
	}
	svc := NewTableService(repo, nil, nil, testLogger(t))

	err := svc.Reorder(context.Background(), &validators.ReorderTablesRequest{
		Items: []validators.TableOrderRequest{
			{ID: first.Hex(), Order: 2},
			{ID: second.Hex(), Order: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[first])
	assert.Equal(t, 1, got[second])
}

func TestReorderRejectsBadID(t *testing.T) {
	repo := &fakeTableRepo{
		reorderFn: func(ctx context.Context, orders map[primitive.ObjectID]int) error {
			t.Fatal("repository should not be written for a malformed id")
			return nil
		},
	}
	svc := NewTableService(repo, nil, nil, testLogger(t))

	err := svc.Reorder(context.Background(), &validators.ReorderTablesRequest{
		Items: []validators.TableOrderRequest{{ID: "not-an-id", Order: 0}},
	})
	assert.Error(t, err)
}
