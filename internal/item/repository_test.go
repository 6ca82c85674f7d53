package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-go/shareit/internal/pkg/paging"
)

func TestSearchQueryOnlyMatchesAvailableItems(t *testing.T) {
	sql, args, err := searchQuery("drill", paging.Page{From: 2, Size: 5}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM public.items")
	assert.Contains(t, sql, "WHERE available = $1 AND (name ILIKE $2 OR description ILIKE $3)")
	assert.Contains(t, sql, "ORDER BY id ASC")
	assert.Contains(t, sql, "LIMIT 5")
	assert.Contains(t, sql, "OFFSET 10")
	assert.Equal(t, []any{true, "%drill%", "%drill%"}, args)
}

func TestSearchQueryEscapesWildcards(t *testing.T) {
	_, args, err := searchQuery(`50%_off\`, paging.Default()).ToSql()
	require.NoError(t, err)
	assert.Equal(t, `%50\%\_off\\%`, args[1])
}
