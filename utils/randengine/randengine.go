// 随机数引擎，包装了golang.org/x/exp/rand，提供仿真所需的各类随机数生成方法
// 说明：所有随机性（到达、车辆类别、ε-贪婪、回放采样）必须经过注入的Engine，
// 禁止使用全局随机数生成器，以保证相同种子下的可复现性
package randengine

import (
	"flag"
	"math"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数序列
)

// Engine 随机数引擎
// 功能：提供可复现的随机数生成功能，支持泊松、离散、均匀等分布
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// DiscreteDistribution 按给定概率分布生成随机数
// 功能：根据权重数组生成离散分布的随机数（车辆类别抽取）
// 参数：weight-权重数组，每个元素表示对应索引的概率权重
// 返回：随机生成的索引值（0到len(weight)-1）
// 算法说明：
// 1. 计算总权重并在[0, 总权重)范围内生成随机数
// 2. 累积概率直到超过随机数，返回对应索引
// 3. 浮点误差导致未命中时返回最后一个索引，保证不会中断仿真步
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	random := .0
	for _, w := range weight {
		random += w
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	return int32(len(weight) - 1)
}

// PTrue 以指定概率返回true
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
// 说明：实现伯努利分布，用于ε-贪婪探索判定
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Poisson 按泊松分布生成随机数
// 功能：生成单步到达车辆数
// 参数：lambda-泊松分布参数（均值），max-安全上限
// 返回：[0, max]范围内的随机整数
// 算法说明：
// 1. Knuth乘法：L=e^{-λ}，反复乘以均匀随机数直到乘积小于L
// 2. 结果截断到max，防止极端配置下队列无界增长
func (e *Engine) Poisson(lambda float64, max int) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= e.Float64()
		if p < l {
			break
		}
		k++
		if k >= max {
			break
		}
	}
	return k
}

// UniformRange 在[low, high)范围内生成均匀分布的随机浮点数
// 参数：low-下界，high-上界
// 返回：[low, high)范围内的随机浮点数
func (e *Engine) UniformRange(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}
