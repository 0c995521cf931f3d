package trafficlight

import (
	"github.com/citymind-lab/crossim/agent"
	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/fuzzy"
	"github.com/samber/lo"
)

// 状态向量维度：4方向×（密度+等待+类别+模糊基线）
const hybridStateDim = 4 * entity.DirectionCount

// adjustmentScale 调整量对基线的最大相对幅度
const adjustmentScale = 0.5

// Hybrid 混合控制器
// 功能：模糊推理给出基线配时，学习智能体输出各方向调整量微调基线，
// 最终配时=clamp(基线×(1+0.5×调整量))；每步结束后将状态转移
// 写入经验回放，按配置节奏触发训练
// 说明：智能体被禁用时退化为纯模糊推理
type Hybrid struct {
	ctx    entity.ITaskContext
	engine *fuzzy.Engine
	agent  *agent.Agent

	trainInterval int
	stepCount     int

	lastState  []float64 // 上一步决策时的状态向量
	lastAction []float64 // 上一步的调整量向量
}

// NewHybrid 创建混合控制器
// 说明：智能体的随机性全部来自上下文注入的引擎
func NewHybrid(ctx entity.ITaskContext) *Hybrid {
	h := &Hybrid{
		ctx:    ctx,
		engine: fuzzy.New(ctx.RuntimeConfig().All.Fuzzy),
	}
	cfg := ctx.RuntimeConfig().All.Agent
	if !cfg.Disabled {
		h.agent = agent.New(ctx.Engine(), cfg, hybridStateDim, int(entity.DirectionCount))
		h.trainInterval = cfg.TrainInterval
	} else {
		log.Warn("learning agent disabled, hybrid controller falls back to fuzzy inference")
	}
	return h
}

// Name 控制器名称
func (h *Hybrid) Name() string {
	return "hybrid"
}

// Agent 内部学习智能体（禁用时为nil）
func (h *Hybrid) Agent() *agent.Agent {
	return h.agent
}

// baselines 各方向的模糊推理基线配时
func (h *Hybrid) baselines(states []entity.LaneState) entity.SignalTiming {
	var timing entity.SignalTiming
	for d, a := range aggregateByDirection(states) {
		timing[d] = h.engine.SuggestGreenTime(a.density, a.wait, a.priority)
	}
	return timing
}

// buildState 构造状态向量
// 算法说明：依次为4个方向的密度、等待、类别与模糊基线，
// 各分量按论域上界归一化到[0,1]
func (h *Hybrid) buildState(states []entity.LaneState, baselines entity.SignalTiming) []float64 {
	agg := aggregateByDirection(states)
	state := make([]float64, 0, hybridStateDim)
	for _, a := range agg {
		state = append(state, a.density/fuzzy.DensityMax)
	}
	for _, a := range agg {
		state = append(state, a.wait/fuzzy.WaitMax)
	}
	for _, a := range agg {
		state = append(state, a.priority/2)
	}
	for _, b := range baselines {
		state = append(state, b/fuzzy.GreenMax)
	}
	return state
}

// GetSignalTiming 给出各方向绿灯时长
// 算法说明：最终配时=clamp(模糊基线×(1+0.5×调整量), 绿灯边界)，
// 调整量为智能体在当前状态下的动作向量（各分量在[-1,1]）
func (h *Hybrid) GetSignalTiming(states []entity.LaneState) entity.SignalTiming {
	base := h.baselines(states)
	if h.agent == nil {
		return base
	}

	state := h.buildState(states, base)
	action := h.agent.SelectAction(state)
	h.lastState = state
	h.lastAction = action

	var timing entity.SignalTiming
	for d := range base {
		timing[d] = lo.Clamp(base[d]*(1+adjustmentScale*action[d]), fuzzy.GreenMin, fuzzy.GreenMax)
	}
	return timing
}

// AfterStep 反馈本步结果
// 说明：以步末车道状态（含新的模糊基线）构造下一状态，
// 写入经验回放，并按训练间隔触发一次批量训练
func (h *Hybrid) AfterStep(states []entity.LaneState, result entity.StepResult) {
	if h.agent == nil {
		return
	}
	next := h.buildState(states, h.baselines(states))
	if h.lastState != nil {
		h.agent.Observe(agent.Transition{
			State:     h.lastState,
			Action:    h.lastAction,
			Reward:    result.Reward,
			NextState: next,
		})
	}
	h.stepCount++
	if h.stepCount%h.trainInterval == 0 {
		h.agent.TrainStep()
	}
}

// Reset 清除决策痕迹
// 说明：已学到的网络权重与经验保留，仅丢弃跨回合的状态转移
func (h *Hybrid) Reset() {
	h.lastState = nil
	h.lastAction = nil
	h.stepCount = 0
}
