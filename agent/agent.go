// 学习智能体：基于经验回放与目标网络的配时微调策略
package agent

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/citymind-lab/crossim/utils/randengine"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "agent")

// Agent 学习智能体
// 功能：观测环境状态，输出各方向绿灯时长调整量（[-1,1]），
// 通过经验回放与延迟同步的目标网络进行离线批量训练
// 说明：探索采用ε-greedy，ε随训练乘性衰减至下限
type Agent struct {
	engine *randengine.Engine
	cfg    config.Agent

	stateDim  int
	actionDim int

	online *mlp // 在线网络
	target *mlp // 目标网络（硬同步）

	buffer     *ReplayBuffer
	epsilon    float64
	trainCount int // 已执行的训练次数（目标网络同步计数）
}

// New 创建学习智能体
// 参数：engine-随机数引擎，cfg-智能体超参数，stateDim/actionDim-状态/动作维度
// 说明：目标网络初始权重与在线网络一致
func New(engine *randengine.Engine, cfg config.Agent, stateDim, actionDim int) *Agent {
	a := &Agent{
		engine:    engine,
		cfg:       cfg,
		stateDim:  stateDim,
		actionDim: actionDim,
		online:    newMLP(engine, stateDim, cfg.HiddenSize, actionDim),
		target:    newMLP(engine, stateDim, cfg.HiddenSize, actionDim),
		buffer:    NewReplayBuffer(cfg.ReplayCapacity),
		epsilon:   cfg.EpsilonStart,
	}
	a.target.copyFrom(a.online)
	return a
}

// SelectAction 选择动作
// 参数：state-状态向量
// 返回：各方向调整量向量，分量均在[-1,1]
// 算法说明：以概率ε均匀随机探索，否则输出在线网络前向结果
func (a *Agent) SelectAction(state []float64) []float64 {
	if a.engine.PTrue(a.epsilon) {
		action := make([]float64, a.actionDim)
		for i := range action {
			action[i] = a.engine.UniformRange(-1, 1)
		}
		return action
	}
	return a.online.forward(state)
}

// Observe 记录一条经验
func (a *Agent) Observe(t Transition) {
	a.buffer.Push(t)
}

// TrainStep 执行一次批量训练
// 返回：批平均损失；经验不足一个批次时返回0且不做任何事
// 算法说明：
// 1. 均匀采样一个批次
// 2. 标量目标y=r（终止）或r+γ·max(目标网络(s'))（非终止），
//    期望输出向量为y·动作向量
// 3. 在线网络做一步梯度下降，每TargetSyncInterval次训练
//    硬同步目标网络，先训练后衰减ε
func (a *Agent) TrainStep() float64 {
	if a.buffer.Len() < a.cfg.BatchSize {
		return 0
	}
	batch := a.buffer.Sample(a.engine, a.cfg.BatchSize)

	states := make([][]float64, len(batch))
	desired := make([][]float64, len(batch))
	for i, t := range batch {
		y := t.Reward
		if !t.Done {
			next := a.target.forward(t.NextState)
			best := -mathutil.INF
			for _, q := range next {
				best = math.Max(best, q)
			}
			y += a.cfg.Gamma * best
		}
		target := make([]float64, a.actionDim)
		for j := 0; j < a.actionDim && j < len(t.Action); j++ {
			target[j] = y * t.Action[j]
		}
		states[i] = t.State
		desired[i] = target
	}

	loss := a.online.trainBatch(states, desired, a.cfg.LearningRate)
	a.trainCount++
	if a.trainCount%a.cfg.TargetSyncInterval == 0 {
		a.target.copyFrom(a.online)
		log.Debugf("target network synced at train step %d", a.trainCount)
	}
	a.epsilon = math.Max(a.cfg.EpsilonMin, a.epsilon*a.cfg.EpsilonDecay)
	return loss
}

// Epsilon 当前探索率
func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

// BufferLen 当前经验数
func (a *Agent) BufferLen() int {
	return a.buffer.Len()
}

// Parameters 导出在线网络权重为扁平数组
func (a *Agent) Parameters() []float64 {
	return a.online.parameters()
}

// SetParameters 从扁平数组导入在线网络权重
// 说明：导入后目标网络随即同步，长度不匹配时返回错误且不修改权重
func (a *Agent) SetParameters(flat []float64) error {
	if err := a.online.setParameters(flat); err != nil {
		return err
	}
	a.target.copyFrom(a.online)
	return nil
}
