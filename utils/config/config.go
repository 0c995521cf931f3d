package config

import "fmt"

// 信控模式
const (
	ModeFixed  = "fixed"  // 固定配时
	ModeFuzzy  = "fuzzy"  // 纯模糊推理
	ModeHybrid = "hybrid" // 模糊推理+学习智能体
)

// 各语言项的合法取值
var (
	densityTerms  = map[string]bool{"": true, "low": true, "medium": true, "high": true}
	waitTerms     = map[string]bool{"": true, "short": true, "medium": true, "long": true}
	priorityTerms = map[string]bool{"": true, "none": true, "transit": true, "emergency": true}
	greenTerms    = map[string]bool{"short": true, "medium": true, "long": true}
)

// RuntimeConfig 运行时配置
// 功能：存储校验并补全默认值后的配置，供任务上下文使用
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：校验配置合法性并填充默认值
// 参数：config-原始配置对象
// 返回：运行时配置指针，配置非法时返回错误（构造期即失败，不进入仿真）
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	if err := validate(&config); err != nil {
		return nil, err
	}
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Control

	return rc, nil
}

// validate 校验配置并填充默认值
// 算法说明：
// 1. 控制参数：步数为正、间隔为正、模式合法
// 2. 路口参数：车道数、到达率、通行时间、周期合法，类别概率之和不超过1
// 3. 智能体超参数：探索率在[0,1]且下限不高于初值、衰减在(0,1]、
//    折扣在[0,1)、学习率为正、批大小不超过回放容量、同步与训练间隔为正
// 4. 模糊规则表：语言项取值合法，结论项必填
func validate(c *Config) error {
	ct := &c.Control
	if ct.Step.Total <= 0 {
		return fmt.Errorf("config: control.step.total must be positive, got %d", ct.Step.Total)
	}
	if ct.Step.Interval <= 0 {
		return fmt.Errorf("config: control.step.interval must be positive, got %f", ct.Step.Interval)
	}
	if ct.Mode == "" {
		ct.Mode = ModeFixed
	}
	switch ct.Mode {
	case ModeFixed, ModeFuzzy, ModeHybrid:
	default:
		return fmt.Errorf("config: control.mode must be one of fixed/fuzzy/hybrid, got %q", ct.Mode)
	}

	i := &c.Intersection
	if i.LanesPerDirection <= 0 {
		return fmt.Errorf("config: intersection.lanes_per_direction must be positive, got %d", i.LanesPerDirection)
	}
	if i.BaseArrivalRate < 0 {
		return fmt.Errorf("config: intersection.base_arrival_rate must be non-negative, got %f", i.BaseArrivalRate)
	}
	if i.EmergencyProb < 0 || i.EmergencyProb > 1 {
		return fmt.Errorf("config: intersection.emergency_prob must be in [0,1], got %f", i.EmergencyProb)
	}
	if i.TransitProb < 0 || i.TransitProb > 1 {
		return fmt.Errorf("config: intersection.transit_prob must be in [0,1], got %f", i.TransitProb)
	}
	if i.EmergencyProb+i.TransitProb > 1 {
		return fmt.Errorf(
			"config: intersection emergency_prob+transit_prob must not exceed 1, got %f",
			i.EmergencyProb+i.TransitProb,
		)
	}
	if i.VehicleClearTime <= 0 {
		return fmt.Errorf("config: intersection.vehicle_clear_time must be positive, got %f", i.VehicleClearTime)
	}
	if i.DefaultCycleTime <= 0 {
		return fmt.Errorf("config: intersection.default_cycle_time must be positive, got %f", i.DefaultCycleTime)
	}
	if i.EmissionRatePerHour < 0 {
		return fmt.Errorf("config: intersection.emission_rate_per_idle_hour must be non-negative, got %f", i.EmissionRatePerHour)
	}
	if i.MaxArrivalsPerStep <= 0 {
		i.MaxArrivalsPerStep = 30
	}

	if c.Control.Mode == ModeHybrid && !c.Agent.Disabled {
		a := &c.Agent
		if a.EpsilonStart < 0 || a.EpsilonStart > 1 {
			return fmt.Errorf("config: agent.epsilon_start must be in [0,1], got %f", a.EpsilonStart)
		}
		if a.EpsilonMin < 0 || a.EpsilonMin > a.EpsilonStart {
			return fmt.Errorf("config: agent.epsilon_min must be in [0,epsilon_start], got %f", a.EpsilonMin)
		}
		if a.EpsilonDecay <= 0 || a.EpsilonDecay > 1 {
			return fmt.Errorf("config: agent.epsilon_decay must be in (0,1], got %f", a.EpsilonDecay)
		}
		if a.Gamma < 0 || a.Gamma >= 1 {
			return fmt.Errorf("config: agent.gamma must be in [0,1), got %f", a.Gamma)
		}
		if a.LearningRate <= 0 {
			return fmt.Errorf("config: agent.learning_rate must be positive, got %f", a.LearningRate)
		}
		if a.HiddenSize <= 0 {
			a.HiddenSize = 32
		}
		if a.ReplayCapacity <= 0 {
			return fmt.Errorf("config: agent.replay_capacity must be positive, got %d", a.ReplayCapacity)
		}
		if a.BatchSize <= 0 || a.BatchSize > a.ReplayCapacity {
			return fmt.Errorf("config: agent.batch_size must be in [1,replay_capacity], got %d", a.BatchSize)
		}
		if a.TargetSyncInterval <= 0 {
			return fmt.Errorf("config: agent.target_sync_interval must be positive, got %d", a.TargetSyncInterval)
		}
		if a.TrainInterval <= 0 {
			a.TrainInterval = 1
		}
	}

	f := &c.Fuzzy
	if f.Resolution < 0 {
		return fmt.Errorf("config: fuzzy.resolution must be non-negative, got %f", f.Resolution)
	}
	if f.Resolution == 0 {
		f.Resolution = 1
	}
	for idx, r := range f.Rules {
		if !densityTerms[r.Density] {
			return fmt.Errorf("config: fuzzy.rules[%d]: bad density term %q", idx, r.Density)
		}
		if !waitTerms[r.Wait] {
			return fmt.Errorf("config: fuzzy.rules[%d]: bad wait term %q", idx, r.Wait)
		}
		if !priorityTerms[r.Priority] {
			return fmt.Errorf("config: fuzzy.rules[%d]: bad priority term %q", idx, r.Priority)
		}
		if !greenTerms[r.Green] {
			return fmt.Errorf("config: fuzzy.rules[%d]: bad green term %q", idx, r.Green)
		}
		if r.Density == "" && r.Wait == "" && r.Priority == "" {
			return fmt.Errorf("config: fuzzy.rules[%d]: rule has empty antecedent", idx)
		}
	}
	return nil
}
