package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreate_CreatesOnce(t *testing.T) {
	r := New[*int]()
	calls := 0
	create := func() *int { calls++; v := calls; return &v }

	a := r.GetOrCreate("s1", create)
	b := r.GetOrCreate("s1", create)
	c := r.GetOrCreate("s2", create)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, r.Len())
}

func TestGetPutDelete(t *testing.T) {
	r := New[string]()
	_, ok := r.Get("k")
	assert.False(t, ok)

	r.Put("k", "v")
	v, ok := r.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	r.Delete("k")
	_, ok = r.Get("k")
	assert.False(t, ok)
}

func TestEvict(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := New[string]()
	r.now = func() time.Time { return now }

	r.Put("old", "a")
	now = now.Add(20 * time.Minute)
	r.Put("fresh", "b")
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, r.Evict(10*time.Minute))
	_, ok := r.Get("old")
	assert.False(t, ok)
	_, ok = r.Get("fresh")
	assert.True(t, ok)
}
