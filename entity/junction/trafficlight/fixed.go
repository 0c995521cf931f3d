package trafficlight

import (
	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/fuzzy"
	"github.com/samber/lo"
)

// FixedTime 固定配时控制器
// 功能：与车流无关的两相位配时，南北向与东西向交替持有半周期绿灯
// 说明：非当前相位的方向只给最小绿灯时长，作为其他控制器的性能基线
type FixedTime struct {
	ctx entity.ITaskContext

	elapsed float64 // 累计仿真时间（秒）
}

// NewFixedTime 创建固定配时控制器
func NewFixedTime(ctx entity.ITaskContext) *FixedTime {
	return &FixedTime{ctx: ctx}
}

// Name 控制器名称
func (f *FixedTime) Name() string {
	return "fixed"
}

// GetSignalTiming 给出各方向绿灯时长
// 算法说明：半周期=clamp(周期/2)，按累计时间所处的半周期奇偶
// 决定当前相位轴（偶数南北、奇数东西），相位轴上的方向取半周期，
// 其余方向取最小绿灯时长
func (f *FixedTime) GetSignalTiming(states []entity.LaneState) entity.SignalTiming {
	cycle := f.ctx.RuntimeConfig().All.Intersection.DefaultCycleTime
	half := lo.Clamp(cycle/2, fuzzy.GreenMin, fuzzy.GreenMax)

	timing := entity.SignalTiming{fuzzy.GreenMin, fuzzy.GreenMin, fuzzy.GreenMin, fuzzy.GreenMin}
	if int(f.elapsed/half)%2 == 0 {
		timing[entity.North] = half
		timing[entity.South] = half
	} else {
		timing[entity.East] = half
		timing[entity.West] = half
	}
	return timing
}

// AfterStep 推进内部相位时钟
func (f *FixedTime) AfterStep(states []entity.LaneState, result entity.StepResult) {
	f.elapsed += f.ctx.Clock().DT
}

// Reset 重置相位时钟
func (f *FixedTime) Reset() {
	f.elapsed = 0
}
