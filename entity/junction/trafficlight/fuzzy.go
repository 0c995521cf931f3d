package trafficlight

import (
	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/fuzzy"
	"github.com/citymind-lab/crossim/utils"
)

// FuzzyControl 模糊推理控制器
// 功能：按方向聚合车道状态（平均密度、平均等待、最高类别），
// 经模糊推理引擎得到各方向绿灯时长
type FuzzyControl struct {
	ctx    entity.ITaskContext
	engine *fuzzy.Engine
}

// NewFuzzyControl 创建模糊推理控制器
func NewFuzzyControl(ctx entity.ITaskContext) *FuzzyControl {
	return &FuzzyControl{
		ctx:    ctx,
		engine: fuzzy.New(ctx.RuntimeConfig().All.Fuzzy),
	}
}

// Name 控制器名称
func (f *FuzzyControl) Name() string {
	return "fuzzy"
}

// directionAggregate 方向级聚合输入
type directionAggregate struct {
	density  float64 // 方向内车道平均排队数
	wait     float64 // 方向内车道平均等待（秒）
	priority float64 // 方向内最高车辆类别
}

// aggregateByDirection 将车道状态聚合为方向级输入
func aggregateByDirection(states []entity.LaneState) [entity.DirectionCount]directionAggregate {
	var agg [entity.DirectionCount]directionAggregate
	var densities, waits [entity.DirectionCount][]float64
	for _, s := range states {
		densities[s.Direction] = append(densities[s.Direction], s.Density)
		waits[s.Direction] = append(waits[s.Direction], s.AvgWait)
		if p := float64(s.MaxClass); p > agg[s.Direction].priority {
			agg[s.Direction].priority = p
		}
	}
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		agg[d].density = utils.Mean(densities[d])
		agg[d].wait = utils.Mean(waits[d])
	}
	return agg
}

// GetSignalTiming 给出各方向绿灯时长
func (f *FuzzyControl) GetSignalTiming(states []entity.LaneState) entity.SignalTiming {
	var timing entity.SignalTiming
	for d, a := range aggregateByDirection(states) {
		timing[d] = f.engine.SuggestGreenTime(a.density, a.wait, a.priority)
	}
	return timing
}

// AfterStep 无操作
func (f *FuzzyControl) AfterStep(states []entity.LaneState, result entity.StepResult) {}

// Reset 无操作（推理引擎无内部状态）
func (f *FuzzyControl) Reset() {}
