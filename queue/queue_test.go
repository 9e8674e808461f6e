package queue_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "joinfilter/entity"
	"joinfilter/queue"
)

const (
	search nt.Strategy = "search"
	count  nt.Strategy = "count"
)

func TestMarkSourceInactive(t *testing.T) {

	srcS1 := nt.NewSource("S")
	srcS2 := nt.NewSource("S")
	srcT := nt.NewSource("T")

	reqS1 := nt.NewRequest(srcS1, search)
	reqS2 := nt.NewRequest(srcS2, search)
	reqT := nt.NewRequest(srcT, search)

	qu := queue.New()
	qu.Push(reqS1, reqT, reqS2)

	removed := qu.MarkSourceInactive("S")

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, qu.Len())
	assert.Equal(t, []*nt.Request{reqT}, qu.GetInactive())

	assert.True(t, srcS1.Disabled())
	assert.True(t, srcS2.Disabled())
	assert.False(t, srcT.Disabled())

	assert.True(t, reqS1.Stale())
	assert.False(t, reqT.Stale())
}

func TestMarkSourceInactiveAdjacent(t *testing.T) {

	src := nt.NewSource("S")
	qu := queue.New()
	for i := 0; i < 5; i++ {
		qu.Push(nt.NewRequest(src, search))
	}

	assert.Equal(t, 5, qu.MarkSourceInactive("S"))
	assert.Equal(t, 0, qu.Len())
	assert.Equal(t, 0, qu.MarkSourceInactive("S"))
}

func TestGetInactive(t *testing.T) {

	started := nt.NewRequest(nt.NewSource("a"), search)
	waiting := nt.NewRequest(nt.NewSource("b"), search)
	counting := nt.NewRequest(nt.NewSource("c"), count)
	disabledSrc := nt.NewSource("d")
	disabled := nt.NewRequest(disabledSrc, search)
	disabledSrc.Disable()

	qu := queue.New()
	qu.Push(started, waiting, counting, disabled)
	qu.Start(started)

	assert.Equal(t, []*nt.Request{waiting, counting}, qu.GetInactive())
	assert.Equal(t, []*nt.Request{waiting}, qu.GetInactive(search))
	assert.Equal(t, []*nt.Request{counting}, qu.GetInactive(count))
	assert.Equal(t, []*nt.Request{waiting, counting}, qu.GetInactive(search, count))
	assert.Empty(t, qu.GetInactive("other"))
}

func TestGet(t *testing.T) {

	ready := nt.NewRequest(nt.NewSource("a"), search)

	blocked := nt.NewRequest(nt.NewSource("b"), search)
	blocked.CanStart = func() bool { return false }

	gated := nt.NewRequest(nt.NewSource("c"), count)
	gated.CanStart = func() bool { return true }

	disabledSrc := nt.NewSource("d")
	disabled := nt.NewRequest(disabledSrc, search)
	disabledSrc.Disable()

	qu := queue.New()
	qu.Push(ready, blocked, gated, disabled)

	assert.Equal(t, []*nt.Request{ready, gated}, qu.Get())
	assert.Equal(t, []*nt.Request{ready}, qu.Get(search))
	assert.Equal(t, []*nt.Request{gated}, qu.Get(count))
}

func TestRemove(t *testing.T) {

	one := nt.NewRequest(nt.NewSource("a"), search)
	two := nt.NewRequest(nt.NewSource("a"), search)

	qu := queue.New()
	qu.Push(one, two)
	qu.Remove(one)

	assert.Equal(t, []*nt.Request{two}, qu.Get())
	assert.NotEqual(t, one.ID, two.ID)
}

func TestConcurrentInvalidation(t *testing.T) {

	qu := queue.New()
	sources := []*nt.Source{nt.NewSource("a"), nt.NewSource("b")}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qu.Push(nt.NewRequest(sources[i%2], search))
		}()
	}
	wg.Wait()
	require.Equal(t, 100, qu.Len())

	wg.Add(2)
	go func() {
		defer wg.Done()
		qu.MarkSourceInactive("a")
	}()
	go func() {
		defer wg.Done()
		for _, req := range qu.Get() {
			_ = req.Stale()
		}
	}()
	wg.Wait()

	assert.Equal(t, 50, qu.Len())
	for _, req := range qu.GetInactive() {
		assert.Equal(t, "b", req.Source.ID)
	}
}
