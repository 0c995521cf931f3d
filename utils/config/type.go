package config

// ControlStep 指定模拟时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step ControlStep `yaml:"step"`
	Seed uint64      `yaml:"seed"` // 随机数种子，相同种子产生逐位一致的结果
	Mode string      `yaml:"mode"` // 信控模式（可选项：fixed fuzzy hybrid）
}

// Intersection 路口与车流配置
// 功能：定义路口规模、到达过程与排放估计参数
type Intersection struct {
	LanesPerDirection   int     `yaml:"lanes_per_direction"`              // 每个方向的车道数
	BaseArrivalRate     float64 `yaml:"base_arrival_rate"`                // 每车道每秒平均到达车辆数（泊松参数）
	EmergencyProb       float64 `yaml:"emergency_prob"`                   // 紧急车辆概率
	TransitProb         float64 `yaml:"transit_prob"`                     // 公交车辆概率
	VehicleClearTime    float64 `yaml:"vehicle_clear_time"`               // 单车通过路口所需时间（秒）
	MaxArrivalsPerStep  int     `yaml:"max_arrivals_per_step,omitempty"`  // 单车道单步到达上限，防止对抗性配置下队列无界增长
	DefaultCycleTime    float64 `yaml:"default_cycle_time"`               // 固定配时模式的信号周期（秒）
	EmissionRatePerHour float64 `yaml:"emission_rate_per_idle_hour"`      // 怠速排放速率（kg CO2/辆/小时）
	FuelRatePerHour     float64 `yaml:"fuel_rate_per_idle_hour,omitempty"` // 怠速油耗速率（L/辆/小时）
}

// Reward 多目标奖励权重配置
// 说明：全部权重可注入，调参无需重新编译
type Reward struct {
	Wait           float64 `yaml:"wait"`                      // 平均等待变化量权重（取负号使用）
	Throughput     float64 `yaml:"throughput"`                // 通行量变化量权重
	Emission       float64 `yaml:"emission"`                  // 排放变化量权重（取负号使用）
	EmergencyBonus float64 `yaml:"emergency_bonus"`           // 本步放行紧急车辆的奖励
	QueueThreshold float64 `yaml:"queue_threshold,omitempty"` // 排队惩罚阈值（总排队数）
	QueuePenalty   float64 `yaml:"queue_penalty,omitempty"`   // 超出阈值部分的单位惩罚
}

// Agent 学习智能体超参数配置
type Agent struct {
	Disabled           bool    `yaml:"disabled,omitempty"`   // 置true时混合模式退化为纯模糊推理
	EpsilonStart       float64 `yaml:"epsilon_start"`        // 初始探索率
	EpsilonMin         float64 `yaml:"epsilon_min"`          // 探索率下限
	EpsilonDecay       float64 `yaml:"epsilon_decay"`        // 每次训练后的探索率衰减系数
	Gamma              float64 `yaml:"gamma"`                // 折扣因子
	LearningRate       float64 `yaml:"learning_rate"`        // 学习率
	HiddenSize         int     `yaml:"hidden_size"`          // 隐藏层神经元数
	ReplayCapacity     int     `yaml:"replay_capacity"`      // 经验回放容量
	BatchSize          int     `yaml:"batch_size"`           // 训练批大小
	TargetSyncInterval int     `yaml:"target_sync_interval"` // 目标网络硬同步间隔（训练步）
	TrainInterval      int     `yaml:"train_interval"`       // 每隔多少个环境步触发一次训练
}

// FuzzyRule 单条模糊规则
// 说明：空字符串表示该前件不参与规则（不约束对应输入）
type FuzzyRule struct {
	Density  string `yaml:"density,omitempty"`  // 密度语言项（low medium high）
	Wait     string `yaml:"wait,omitempty"`     // 等待语言项（short medium long）
	Priority string `yaml:"priority,omitempty"` // 优先级语言项（none transit emergency）
	Green    string `yaml:"green"`              // 结论绿灯语言项（short medium long）
}

// Fuzzy 模糊推理配置
type Fuzzy struct {
	Resolution float64     `yaml:"resolution,omitempty"` // 去模糊化采样分辨率（秒）
	Rules      []FuzzyRule `yaml:"rules,omitempty"`      // 规则表，为空则使用内置15条规则
}

// Config YAML配置文件的根结构
type Config struct {
	Control      Control      `yaml:"control"`      // 模拟过程控制
	Intersection Intersection `yaml:"intersection"` // 路口与车流
	Reward       Reward       `yaml:"reward"`       // 奖励权重
	Agent        Agent        `yaml:"agent"`        // 智能体超参数
	Fuzzy        Fuzzy        `yaml:"fuzzy"`        // 模糊推理
}
