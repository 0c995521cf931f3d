package agent

import "github.com/citymind-lab/crossim/utils/randengine"

// Transition 环境交互的单条经验
// 功能：经验回放的基本单元，记录一次状态转移
type Transition struct {
	State     []float64 // 状态向量
	Action    []float64 // 动作向量（各方向调整量，[-1,1]）
	Reward    float64   // 奖励
	NextState []float64 // 下一状态向量
	Done      bool      // 终止标志
}

// ReplayBuffer 有界经验回放缓冲区
// 功能：环形存储经验，容量满后先进先出淘汰最旧经验，支持均匀随机采样
// 说明：采样不移除元素；缓冲区只被智能体单线程读写
type ReplayBuffer struct {
	data     []Transition
	capacity int
	next     int // 下一个写入位置（环形索引）
}

// NewReplayBuffer 创建经验回放缓冲区
// 参数：capacity-容量上限
func NewReplayBuffer(capacity int) *ReplayBuffer {
	return &ReplayBuffer{
		data:     make([]Transition, 0, capacity),
		capacity: capacity,
	}
}

// Push 写入一条经验
// 说明：未满时追加，已满时覆盖最旧位置（FIFO淘汰），
// 缓冲区长度恒不超过容量
func (b *ReplayBuffer) Push(t Transition) {
	if len(b.data) < b.capacity {
		b.data = append(b.data, t)
	} else {
		b.data[b.next] = t
	}
	b.next = (b.next + 1) % b.capacity
}

// Len 当前经验数
func (b *ReplayBuffer) Len() int {
	return len(b.data)
}

// Sample 均匀随机采样n条互不相同的经验
// 参数：engine-随机数引擎，n-采样数量
// 返回：采样得到的经验切片
// 说明：n大于缓冲区长度时返回全部经验所能支持的最大数量；采样不移除元素
func (b *ReplayBuffer) Sample(engine *randengine.Engine, n int) []Transition {
	batch := make([]Transition, 0, n)
	picked := make(map[int]bool, n)
	for len(batch) < n && len(batch) < len(b.data) {
		idx := engine.Intn(len(b.data))
		if !picked[idx] {
			picked[idx] = true
			batch = append(batch, b.data[idx])
		}
	}
	return batch
}
