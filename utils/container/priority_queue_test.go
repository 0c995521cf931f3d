package container_test

import (
	"testing"

	"github.com/citymind-lab/crossim/utils/container"
	"github.com/stretchr/testify/assert"
)

func TestPriorityQueueInit(t *testing.T) {
	pq := container.NewPriorityQueue[int]()
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueueOrder(t *testing.T) {
	pq := container.NewPriorityQueue[string]()

	// push in arbitrary order, pop must follow ascending priority
	pq.Push("east", -3.5)
	pq.Push("north", -12.0)
	pq.Push("west", 0)
	pq.Push("south", -7.25)
	pq.Heapify()
	assert.Equal(t, 4, pq.Len())

	v, p := pq.HeapPop()
	assert.Equal(t, "north", v)
	assert.Equal(t, -12.0, p)
	v, _ = pq.HeapPop()
	assert.Equal(t, "south", v)
	v, _ = pq.HeapPop()
	assert.Equal(t, "east", v)
	v, _ = pq.HeapPop()
	assert.Equal(t, "west", v)
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueuePushAfterPop(t *testing.T) {
	pq := container.NewPriorityQueue[int]()
	pq.Push(1, 1)
	pq.Push(2, 2)
	pq.Heapify()

	v, _ := pq.HeapPop()
	assert.Equal(t, 1, v)

	pq.Push(0, 0)
	pq.Heapify()
	v, _ = pq.HeapPop()
	assert.Equal(t, 0, v)
	v, _ = pq.HeapPop()
	assert.Equal(t, 2, v)
}
