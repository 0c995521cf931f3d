package lane

import (
	"github.com/citymind-lab/crossim/entity"
)

// Manager 车道管理器
// 功能：管理四个方向的所有进口车道，提供方向级与全局统计
type Manager struct {
	ctx entity.ITaskContext

	lanes [entity.DirectionCount][]entity.ILane // 按方向组织的车道
}

// NewManager 创建车道管理器
// 参数：ctx-任务上下文
func NewManager(ctx entity.ITaskContext) *Manager {
	return &Manager{ctx: ctx}
}

// Init 初始化
// 说明：按配置的每方向车道数构建车道
func (m *Manager) Init() {
	n := m.ctx.RuntimeConfig().All.Intersection.LanesPerDirection
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		m.lanes[d] = make([]entity.ILane, 0, n)
		for i := 0; i < n; i++ {
			m.lanes[d] = append(m.lanes[d], newLane(d, i))
		}
	}
}

// Lanes 获取指定方向的车道列表
func (m *Manager) Lanes(d entity.Direction) []entity.ILane {
	return m.lanes[d]
}

// States 获取所有车道状态快照
// 返回：按方向序（方向内按索引序）排列的车道状态
func (m *Manager) States() []entity.LaneState {
	states := make([]entity.LaneState, 0, entity.DirectionCount*len(m.lanes[0]))
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		for _, l := range m.lanes[d] {
			states = append(states, l.State())
		}
	}
	return states
}

// TotalQueued 总排队数
func (m *Manager) TotalQueued() int {
	total := 0
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		for _, l := range m.lanes[d] {
			total += l.Len()
		}
	}
	return total
}

// QueueLengths 各方向排队长度
func (m *Manager) QueueLengths() [entity.DirectionCount]int {
	var lengths [entity.DirectionCount]int
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		for _, l := range m.lanes[d] {
			lengths[d] += l.Len()
		}
	}
	return lengths
}

// AvgWait 所有排队车辆的平均等待时间
// 算法说明：按车道快照的(平均等待×排队数)加权求和后除以总排队数，
// 空路口返回0而不是NaN
func (m *Manager) AvgWait() float64 {
	sum, n := 0., 0.
	for _, s := range m.States() {
		sum += s.AvgWait * s.Density
		n += s.Density
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

// AccumulateWait 所有排队车辆累计等待时间
func (m *Manager) AccumulateWait(dt float64) {
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		for _, l := range m.lanes[d] {
			l.AccumulateWait(dt)
		}
	}
}

// Reset 清空所有队列
func (m *Manager) Reset() {
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		for _, l := range m.lanes[d] {
			l.Reset()
		}
	}
}
