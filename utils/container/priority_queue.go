package container

import "container/heap"

// item 优先队列中单个元素
type item[T any] struct {
	value    T       // 元素的值
	priority float64 // 优先级（越小越优先）
	index    int     // 项在堆中的索引，由heap.Interface方法维护
}

// innerQueue 实现heap.Interface的内部存储
// 说明：使用小于号比较，Pop返回优先级数值最小的项（小顶堆）
type innerQueue[T any] []*item[T]

func (q innerQueue[T]) Len() int { return len(q) }

func (q innerQueue[T]) Less(i, j int) bool {
	return q[i].priority < q[j].priority
}

func (q innerQueue[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *innerQueue[T]) Push(x any) {
	n := len(*q)
	item := x.(*item[T])
	item.index = n
	*q = append(*q, item)
}

func (q *innerQueue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // 避免内存泄漏
	item.index = -1
	*q = old[0 : n-1]
	return item
}

// PriorityQueue 泛型优先队列
// 功能：按float64优先级组织元素，数值越小越优先
// 说明：相位选择时压入负压力值，使压力最大的方向最先弹出
type PriorityQueue[T any] struct {
	queue innerQueue[T]
}

// NewPriorityQueue 创建优先队列
// 返回：新创建的优先队列指针
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(innerQueue[T], 0)}
}

// Push 向队列中添加元素（不维护堆性质）
// 参数：value-元素值，priority-优先级
// 说明：批量Push后需调用Heapify重建堆
func (pq *PriorityQueue[T]) Push(value T, priority float64) {
	pq.queue = append(pq.queue, &item[T]{
		value:    value,
		priority: priority,
		index:    len(pq.queue),
	})
}

// Heapify 重建堆性质
// 说明：批量Push后调用一次，复杂度O(n)
func (pq *PriorityQueue[T]) Heapify() {
	heap.Init(&pq.queue)
}

// HeapPop 弹出优先级数值最小的元素
// 返回：元素值与其优先级
// 说明：队列为空时panic，调用方需保证非空
func (pq *PriorityQueue[T]) HeapPop() (T, float64) {
	popped := heap.Pop(&pq.queue).(*item[T])
	return popped.value, popped.priority
}

// Len 返回队列长度
func (pq *PriorityQueue[T]) Len() int {
	return pq.queue.Len()
}
