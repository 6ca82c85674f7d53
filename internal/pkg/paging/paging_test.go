package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.NoError(t, Page{From: 0, Size: 0}.Validate())
	assert.ErrorIs(t, Page{From: -1, Size: 10}.Validate(), ErrInvalidPage)
	assert.ErrorIs(t, Page{From: 0, Size: -5}.Validate(), ErrInvalidPage)
}

func TestOffsetIsPageIndexTimesSize(t *testing.T) {
	p := Page{From: 3, Size: 20}
	assert.Equal(t, uint64(20), p.Limit())
	assert.Equal(t, uint64(60), p.Offset())
	assert.False(t, p.Empty())
	assert.True(t, Page{From: 2}.Empty())
}
