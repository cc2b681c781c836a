package inflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_TryAcquire(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.TryAcquire("directory.sync"))
	assert.False(t, r.TryAcquire("directory.sync"))
	assert.True(t, r.Active("directory.sync"))

	// Independent keys do not block each other
	assert.True(t, r.TryAcquire("enhance.regular.row-1"))
	assert.True(t, r.TryAcquire("enhance.regular.row-2"))
}

func TestRegistry_Release(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.TryAcquire("directory.sync"))
	r.Release("directory.sync")

	assert.False(t, r.Active("directory.sync"))
	assert.True(t, r.TryAcquire("directory.sync"))
}

func TestRegistry_ReleaseUnheldKey(t *testing.T) {
	r := NewRegistry()
	r.Release("never-acquired")
	assert.False(t, r.Active("never-acquired"))
}
