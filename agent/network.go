package agent

import (
	"fmt"
	"math"

	"github.com/citymind-lab/crossim/utils/randengine"
	"github.com/samber/lo"
)

const (
	momentumBeta = 0.9  // 动量系数
	maxGradNorm  = 10.0 // 单参数梯度裁剪幅度
)

// mlp 两层前馈函数逼近器
// 功能：状态向量→各方向调整量向量的可训练映射
// 说明：隐藏层ReLU激活，输出层tanh激活保证输出在[-1,1]；
// 权重按层存储为扁平数组，便于整体导出/导入
type mlp struct {
	inputDim  int
	hiddenDim int
	outputDim int

	weights  [2][]float64 // [0]输入→隐藏，[1]隐藏→输出
	momentum [2][]float64 // 动量缓存
}

// newMLP 创建并随机初始化网络
// 参数：engine-随机数引擎，in/hidden/out-各层维度
// 算法说明：各层权重在[-0.5,0.5]均匀取值后按sqrt(2/扇入)缩放（He初始化）
func newMLP(engine *randengine.Engine, in, hidden, out int) *mlp {
	m := &mlp{inputDim: in, hiddenDim: hidden, outputDim: out}
	m.weights[0] = make([]float64, in*hidden)
	scale := math.Sqrt(2.0 / float64(in))
	for i := range m.weights[0] {
		m.weights[0][i] = (engine.Float64() - 0.5) * scale
	}
	m.weights[1] = make([]float64, hidden*out)
	scale = math.Sqrt(2.0 / float64(hidden))
	for i := range m.weights[1] {
		m.weights[1][i] = (engine.Float64() - 0.5) * scale
	}
	m.momentum[0] = make([]float64, in*hidden)
	m.momentum[1] = make([]float64, hidden*out)
	return m
}

// forwardHidden 前向计算隐藏层激活
func (m *mlp) forwardHidden(state []float64) []float64 {
	hidden := make([]float64, m.hiddenDim)
	for h := 0; h < m.hiddenDim; h++ {
		sum := 0.
		for i := 0; i < len(state) && i < m.inputDim; i++ {
			sum += state[i] * m.weights[0][i*m.hiddenDim+h]
		}
		hidden[h] = math.Max(0, sum) // ReLU
	}
	return hidden
}

// forward 前向计算输出向量
// 参数：state-状态向量
// 返回：[-1,1]^outputDim内的输出向量
func (m *mlp) forward(state []float64) []float64 {
	hidden := m.forwardHidden(state)
	out := make([]float64, m.outputDim)
	for o := 0; o < m.outputDim; o++ {
		sum := 0.
		for h := 0; h < m.hiddenDim; h++ {
			sum += hidden[h] * m.weights[1][h*m.outputDim+o]
		}
		out[o] = math.Tanh(sum)
	}
	return out
}

// trainBatch 对一个批次执行一次梯度下降
// 参数：states-批状态，desired-批期望输出向量，lr-学习率
// 返回：批平均平方误差
// 算法说明：
// 1. 前向：计算隐藏层与tanh输出
// 2. 反向：输出层误差δ=(期望-输出)·(1-输出²)，经权重回传并
//    经ReLU门控得到隐藏层误差
// 3. 梯度在批内累加，裁剪后按动量更新权重（仅一步，不迭代至收敛）
func (m *mlp) trainBatch(states, desired [][]float64, lr float64) float64 {
	var grads [2][]float64
	grads[0] = make([]float64, len(m.weights[0]))
	grads[1] = make([]float64, len(m.weights[1]))

	totalLoss := 0.
	for bi, state := range states {
		hidden := m.forwardHidden(state)
		out := make([]float64, m.outputDim)
		delta := make([]float64, m.outputDim)
		for o := 0; o < m.outputDim; o++ {
			sum := 0.
			for h := 0; h < m.hiddenDim; h++ {
				sum += hidden[h] * m.weights[1][h*m.outputDim+o]
			}
			out[o] = math.Tanh(sum)
			err := desired[bi][o] - out[o]
			totalLoss += err * err
			delta[o] = err * (1 - out[o]*out[o]) // tanh导数
		}

		for h := 0; h < m.hiddenDim; h++ {
			for o := 0; o < m.outputDim; o++ {
				grads[1][h*m.outputDim+o] += hidden[h] * delta[o]
			}
		}
		for h := 0; h < m.hiddenDim; h++ {
			if hidden[h] <= 0 { // ReLU门控
				continue
			}
			back := 0.
			for o := 0; o < m.outputDim; o++ {
				back += delta[o] * m.weights[1][h*m.outputDim+o]
			}
			for i := 0; i < len(state) && i < m.inputDim; i++ {
				grads[0][i*m.hiddenDim+h] += state[i] * back
			}
		}
	}

	scale := lr / float64(len(states))
	for layer := 0; layer < 2; layer++ {
		for i := range grads[layer] {
			g := lo.Clamp(grads[layer][i], -maxGradNorm, maxGradNorm)
			m.momentum[layer][i] = momentumBeta*m.momentum[layer][i] + (1-momentumBeta)*g
			m.weights[layer][i] += scale * m.momentum[layer][i]
		}
	}
	return totalLoss / float64(len(states))
}

// parameters 导出权重为扁平数组（先输入层后输出层）
func (m *mlp) parameters() []float64 {
	flat := make([]float64, 0, len(m.weights[0])+len(m.weights[1]))
	flat = append(flat, m.weights[0]...)
	flat = append(flat, m.weights[1]...)
	return flat
}

// setParameters 从扁平数组导入权重
// 返回：长度不匹配时返回错误
func (m *mlp) setParameters(flat []float64) error {
	want := len(m.weights[0]) + len(m.weights[1])
	if len(flat) != want {
		return fmt.Errorf("agent: parameter buffer length %d does not match network size %d", len(flat), want)
	}
	copy(m.weights[0], flat[:len(m.weights[0])])
	copy(m.weights[1], flat[len(m.weights[0]):])
	return nil
}

// copyFrom 整体硬拷贝另一网络的权重
// 说明：目标网络同步专用，不拷贝动量
func (m *mlp) copyFrom(other *mlp) {
	copy(m.weights[0], other.weights[0])
	copy(m.weights[1], other.weights[1])
}
