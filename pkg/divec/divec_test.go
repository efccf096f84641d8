package divec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_AllocAndDestroy(t *testing.T) {
	p := NewPool[int](2)
	a := p.Alloc()
	b := p.Alloc()
	*a = 1
	*b = 2

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 1, *a)
	assert.Equal(t, 2, *b)

	p.Destroy()
	assert.Equal(t, 0, p.Len())
}

func TestVector_AddAtIterUp(t *testing.T) {
	v := NewVector[string](0)
	v.Add("a")
	v.Add("b")
	v.Add("c")

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, "b", v.At(1))

	var seen []string
	v.IterUp(func(i int, item string) bool {
		seen = append(seen, item)
		return i < 1 // stop after the second element
	})
	assert.Equal(t, []string{"a", "b"}, seen)

	assert.Equal(t, []string{"a", "b", "c"}, v.Slice())
}

func TestSparseArray_AddFindLength(t *testing.T) {
	s := NewSparseArray[int, string]()
	_, ok := s.Find(42)
	assert.False(t, ok)

	s.Add(42, "answer")
	s.Add(7, "lucky")

	v, ok := s.Find(42)
	assert.True(t, ok)
	assert.Equal(t, "answer", v)
	assert.Equal(t, 2, s.Length())
	assert.ElementsMatch(t, []int{42, 7}, s.Keys())
}
