package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page := Paginate(items, 2, 20)
	assert.Equal(t, 45, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 20)
	assert.Equal(t, 20, page.Data[0])
	assert.True(t, page.HasNext)

	last := Paginate(items, 3, 20)
	assert.Len(t, last.Data, 5)
	assert.False(t, last.HasNext)
}

func TestPaginateOutOfRange(t *testing.T) {
	page := Paginate([]string{"a", "b"}, 9, 20)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
	assert.Equal(t, 2, page.TotalCount)
}

func TestPaginateDefaults(t *testing.T) {
	page := Paginate([]string{"a"}, 0, 0)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PerPage)
	assert.Len(t, page.Data, 1)
}
