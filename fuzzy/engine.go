// 模糊推理引擎：将路口的密度、等待时间与优先级映射为绿灯时长建议
// 说明：纯函数实现，确定性、无副作用、永不失败，域外输入一律截断
package fuzzy

import (
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/samber/lo"
)

// 输入输出论域边界
const (
	DensityMax = 50.0  // 密度论域上界（辆/车道）
	WaitMax    = 180.0 // 等待论域上界（秒）

	GreenMin = 10.0  // 绿灯时长下界（秒）
	GreenMax = 120.0 // 绿灯时长上界（秒）

	// 紧急车辆绿灯下限：无论密度/等待如何，紧急优先级的输出
	// 确定性地落在高位区间
	emergencyFloor = 90.0
)

// term 三角隶属函数
// 说明：由断点(a,b,c)定义，[a,c]之外为0，b处达到峰值1；
// a==b或b==c时退化为肩型（边界点取1）
type term struct {
	a, b, c float64
}

// membership 计算隶属度
// 参数：x-清晰输入值
// 返回：[0,1]内的隶属度
func (t term) membership(x float64) float64 {
	if x < t.a || x > t.c {
		return 0
	}
	up := 1.0
	if x < t.b {
		up = (x - t.a) / (t.b - t.a)
	}
	down := 1.0
	if x > t.b {
		down = (t.c - x) / (t.c - t.b)
	}
	return min(up, down)
}

// 各语言变量的隶属函数断点
var (
	densityTerms = map[string]term{
		"low":    {0, 0, 20},
		"medium": {10, 25, 40},
		"high":   {30, 50, 50},
	}
	waitTerms = map[string]term{
		"short":  {0, 0, 60},
		"medium": {40, 90, 140},
		"long":   {120, 180, 180},
	}
	priorityTerms = map[string]term{
		"none":      {0, 0, 1},
		"transit":   {0, 1, 2},
		"emergency": {1, 2, 2},
	}
	greenTerms = map[string]term{
		"short":  {GreenMin, GreenMin, 40},
		"medium": {30, 60, 90},
		"long":   {80, GreenMax, GreenMax},
	}
	// 输出语言项的固定顺序
	greenOrder = []string{"short", "medium", "long"}
)

// defaultRules 内置规则表（15条）
// 说明：9条普通车辆密度×等待规则、3条公交规则、3条紧急规则；
// 紧急规则在推理中占优（普通/公交规则的优先级前件在紧急输入下隶属度为0）
var defaultRules = []config.FuzzyRule{
	// 紧急车辆
	{Priority: "emergency", Density: "low", Green: "long"},
	{Priority: "emergency", Density: "medium", Green: "long"},
	{Priority: "emergency", Density: "high", Green: "long"},
	// 公交车辆
	{Priority: "transit", Density: "low", Green: "medium"},
	{Priority: "transit", Density: "medium", Green: "medium"},
	{Priority: "transit", Density: "high", Green: "long"},
	// 普通车辆：密度×等待全覆盖
	{Priority: "none", Density: "low", Wait: "short", Green: "short"},
	{Priority: "none", Density: "low", Wait: "medium", Green: "short"},
	{Priority: "none", Density: "low", Wait: "long", Green: "medium"},
	{Priority: "none", Density: "medium", Wait: "short", Green: "short"},
	{Priority: "none", Density: "medium", Wait: "medium", Green: "medium"},
	{Priority: "none", Density: "medium", Wait: "long", Green: "long"},
	{Priority: "none", Density: "high", Wait: "short", Green: "medium"},
	{Priority: "none", Density: "high", Wait: "medium", Green: "medium"},
	{Priority: "none", Density: "high", Wait: "long", Green: "long"},
}

// Engine 模糊推理引擎
// 功能：基于Mamdani推理（min合取、max聚合、质心去模糊化）给出绿灯时长建议
type Engine struct {
	rules      []config.FuzzyRule // 规则表
	resolution float64            // 去模糊化采样分辨率（秒）
}

// New 创建模糊推理引擎
// 参数：cfg-模糊推理配置，规则表为空时使用内置15条规则
// 返回：初始化完成的引擎实例
// 说明：规则表合法性已在配置校验阶段保证
func New(cfg config.Fuzzy) *Engine {
	rules := cfg.Rules
	if len(rules) == 0 {
		rules = defaultRules
	}
	resolution := cfg.Resolution
	if resolution <= 0 {
		resolution = 1
	}
	return &Engine{rules: rules, resolution: resolution}
}

// SuggestGreenTime 给出绿灯时长建议
// 参数：density-密度（辆/车道），wait-平均等待（秒），priority-优先级（0普通 1公交 2紧急）
// 返回：[GreenMin, GreenMax]内的绿灯时长（秒）
// 算法说明：
// 1. 输入截断：密度[0,50]、等待[0,180]、优先级[0,2]
// 2. 按优先级逐级推理并取下确界，保证同等密度/等待下
//    紧急≥公交≥普通的单调性
// 3. 紧急优先级额外施加高位区间下限
func (e *Engine) SuggestGreenTime(density, wait, priority float64) float64 {
	density = lo.Clamp(density, 0, DensityMax)
	wait = lo.Clamp(wait, 0, WaitMax)
	priority = lo.Clamp(priority, 0, 2)

	green := e.infer(density, wait, 0)
	if priority >= 1 {
		green = max(green, e.infer(density, wait, min(priority, 1)))
	}
	if priority >= 2 {
		green = max(green, e.infer(density, wait, priority), emergencyFloor)
	}
	return lo.Clamp(green, GreenMin, GreenMax)
}

// infer 单次Mamdani推理
// 参数：已截断的密度、等待与优先级
// 返回：质心去模糊化结果
// 算法说明：
// 1. 规则点火：前件合取取各隶属度最小值，空前件不参与
// 2. 聚合：对每个输出语言项取所有结论为该项的规则点火强度最大值
// 3. 质心：在[GreenMin, GreenMax]上按分辨率采样，
//    μ(x)=max_t(min(强度_t, 隶属度_t(x)))，结果=Σ(x·μ(x))/Σμ(x)
// 4. 数值退化：分母为0时回退到论域中点
func (e *Engine) infer(density, wait, priority float64) float64 {
	strengths := map[string]float64{}
	for _, r := range e.rules {
		s := 1.0
		if r.Density != "" {
			s = min(s, densityTerms[r.Density].membership(density))
		}
		if r.Wait != "" {
			s = min(s, waitTerms[r.Wait].membership(wait))
		}
		if r.Priority != "" {
			s = min(s, priorityTerms[r.Priority].membership(priority))
		}
		if s > strengths[r.Green] {
			strengths[r.Green] = s
		}
	}

	num, den := 0., 0.
	for x := GreenMin; x <= GreenMax; x += e.resolution {
		mu := 0.
		for _, name := range greenOrder {
			if s := strengths[name]; s > 0 {
				mu = max(mu, min(s, greenTerms[name].membership(x)))
			}
		}
		num += x * mu
		den += mu
	}
	if den == 0 {
		return (GreenMin + GreenMax) / 2
	}
	return num / den
}
