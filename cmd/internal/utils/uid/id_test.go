package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	Init(1)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "id %s handed out twice", id)
		seen[id] = true
	}
}
