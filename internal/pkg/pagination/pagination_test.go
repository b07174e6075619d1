package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsValues(t *testing.T) {
	p := New(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = New(3, 250)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset)
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(New(2, 10), 25)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalItems)
	assert.Equal(t, 10, meta.ItemsPerPage)
}

func TestGetMetaExactPages(t *testing.T) {
	meta := GetMeta(New(1, 10), 30)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestGetMetaEmpty(t *testing.T) {
	meta := GetMeta(New(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, int64(0), meta.TotalItems)
}

func TestNewResponseShape(t *testing.T) {
	items := []string{"a", "b"}
	resp := NewResponse(items, New(1, 2), 4)

	assert.Equal(t, items, resp.Items)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
}
