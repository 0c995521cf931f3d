package lane

import (
	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/utils"
	"github.com/samber/lo"
)

// Lane 车道实体
// 功能：维护单个进口车道的排队车辆，队列严格按到达顺序存储
// 说明：队列只被环境单线程修改，控制器仅能通过LaneState快照读取
type Lane struct {
	direction entity.Direction
	index     int // 方向内车道索引

	queue []entity.IVehicle // 排队车辆（到达顺序）
}

// newLane 创建并初始化一个新的Lane实例
// 参数：direction-所属方向，index-方向内索引
func newLane(direction entity.Direction, index int) *Lane {
	return &Lane{
		direction: direction,
		index:     index,
		queue:     make([]entity.IVehicle, 0),
	}
}

func (l *Lane) Direction() entity.Direction {
	return l.direction
}

func (l *Lane) Index() int {
	return l.index
}

func (l *Lane) Len() int {
	return len(l.queue)
}

// Push 车辆入队
// 说明：入队顺序即到达顺序，同一时刻到达的车辆保持抽取顺序（稳定）
func (l *Lane) Push(v entity.IVehicle) {
	l.queue = append(l.queue, v)
}

// bestIndex 查找队列中优先级最高、到达最早的车辆下标
// 返回：车辆下标，空队列返回-1
// 算法说明：队列本身按到达顺序存储，因此从队首扫描时
// 同类别中第一个出现的即为最早到达者，只需比较类别
func (l *Lane) bestIndex() int {
	best := -1
	for i, v := range l.queue {
		if best < 0 || v.Class() > l.queue[best].Class() {
			best = i
		}
	}
	return best
}

// PeekBest 查看队列中优先级最高、到达最早的车辆
// 返回：车辆实例，空队列返回nil
func (l *Lane) PeekBest() entity.IVehicle {
	if i := l.bestIndex(); i >= 0 {
		return l.queue[i]
	}
	return nil
}

// PopBest 弹出队列中优先级最高、到达最早的车辆
// 返回：车辆实例，空队列返回nil
// 说明：放行顺序为紧急>公交>普通，同类别先到先行
func (l *Lane) PopBest() entity.IVehicle {
	i := l.bestIndex()
	if i < 0 {
		return nil
	}
	v := l.queue[i]
	l.queue = append(l.queue[:i], l.queue[i+1:]...)
	return v
}

// AccumulateWait 所有排队车辆累计等待时间
// 参数：dt-时间步长
func (l *Lane) AccumulateWait(dt float64) {
	for _, v := range l.queue {
		v.AccumulateWait(dt)
	}
}

// State 生成车道状态快照
// 说明：密度即排队车辆数；平均等待对空队列返回0而不是NaN；
// MaxClass为队列中最高优先级类别，空队列为普通
func (l *Lane) State() entity.LaneState {
	s := entity.LaneState{
		Direction: l.direction,
		Index:     l.index,
		Density:   float64(len(l.queue)),
		MaxClass:  entity.VehicleClassRegular,
	}
	s.AvgWait = utils.Mean(lo.Map(l.queue, func(v entity.IVehicle, _ int) float64 {
		return v.WaitTime()
	}))
	for _, v := range l.queue {
		if v.Class() > s.MaxClass {
			s.MaxClass = v.Class()
		}
	}
	return s
}

// Reset 清空队列
func (l *Lane) Reset() {
	l.queue = l.queue[:0]
}
