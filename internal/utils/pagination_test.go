package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func paramsFromQuery(t *testing.T, query string) *PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := paramsFromQuery(t, "")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
}

func TestGetPaginationParamsClamps(t *testing.T) {
	p := paramsFromQuery(t, "page=-3&pageSize=9999")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestGetPaginationParamsSortAllowList(t *testing.T) {
	p := paramsFromQuery(t, "sort=pin_hash&order=sideways")

	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)

	p = paramsFromQuery(t, "sort=name&order=asc")
	assert.Equal(t, "name", p.Sort)
	assert.Equal(t, "asc", p.Order)
}

func TestGetSearchFilterQuotesRegex(t *testing.T) {
	p := &PaginationParams{Search: "cola (0.5l)"}

	filter := p.GetSearchFilter([]string{"name"})
	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 1)
	assert.Equal(t, `cola \(0\.5l\)`, or[0]["name"].(bson.M)["$regex"])
}

func TestGetSearchFilterEmpty(t *testing.T) {
	p := &PaginationParams{}
	assert.Empty(t, p.GetSearchFilter([]string{"name"}))

	p.Search = "tea"
	assert.Empty(t, p.GetSearchFilter(nil))
}

func TestCreatePaginationMeta(t *testing.T) {
	meta := CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 20}, 45)

	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	last := CreatePaginationMeta(&PaginationParams{Page: 3, PageSize: 20}, 45)
	assert.False(t, last.HasNext)
}
