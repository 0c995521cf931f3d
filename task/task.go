// 仿真任务：装配时钟、随机数引擎、车道管理器与路口环境并驱动主循环
package task

import (
	"flag"

	"github.com/citymind-lab/crossim/clock"
	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/entity/junction"
	"github.com/citymind-lab/crossim/entity/junction/trafficlight"
	"github.com/citymind-lab/crossim/entity/lane"
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/citymind-lab/crossim/utils/randengine"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "task")

var (
	logStepInterval = flag.Int("log.step_interval", 100, "仿真过程中心跳日志的步间隔")
)

// Context 仿真任务上下文
// 功能：持有所有仿真组件并实现entity.ITaskContext，
// 是组件间相互访问的唯一入口
type Context struct {
	clock         *clock.Clock
	engine        *randengine.Engine
	runtimeConfig *config.RuntimeConfig

	laneManager  entity.ILaneManager
	intersection *junction.Intersection
}

// Summary 整段仿真的汇总指标
type Summary struct {
	Steps            int32   // 执行步数
	Arrived          int     // 累计到达车辆数
	Processed        int     // 累计放行车辆数
	EmergencyCleared int     // 累计放行紧急车辆数
	Queued           int     // 结束时仍在排队的车辆数
	AvgWait          float64 // 结束时排队车辆的平均等待（秒）
	WaitTotal        float64 // 累计等待车时（辆·秒）
	ThroughputPerMin float64 // 平均通行量（辆/分钟）
	EmissionKg       float64 // 累计怠速排放（kg CO2）
	FuelL            float64 // 累计怠速油耗（L）
	RewardSum        float64 // 累计奖励
	RewardMean       float64 // 平均每步奖励
}

// NewContext 创建仿真任务上下文
// 参数：cfg-原始配置
// 返回：装配完成的上下文，配置非法时返回错误
// 算法说明：
// 1. 校验配置并构造运行时配置
// 2. 按配置种子创建随机数引擎（所有随机性的唯一来源）
// 3. 依次装配时钟、车道管理器、控制器与路口环境
func NewContext(cfg config.Config) (*Context, error) {
	rc, err := config.NewRuntimeConfig(cfg)
	if err != nil {
		return nil, err
	}
	ctx := &Context{
		runtimeConfig: rc,
		clock:         clock.New(rc.C.Step),
		engine:        randengine.New(rc.C.Seed),
	}

	manager := lane.NewManager(ctx)
	ctx.laneManager = manager
	manager.Init()

	controller := trafficlight.New(ctx)
	ctx.intersection = junction.New(ctx, controller)
	log.Infof("task initialized: mode=%s lanes=%d steps=[%d,%d) dt=%.1fs",
		controller.Name(),
		rc.All.Intersection.LanesPerDirection,
		ctx.clock.START_STEP, ctx.clock.END_STEP, ctx.clock.DT,
	)
	return ctx, nil
}

// Clock 仿真时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// Engine 随机数引擎
func (ctx *Context) Engine() *randengine.Engine {
	return ctx.engine
}

// RuntimeConfig 运行时配置
func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// LaneManager 车道管理器
func (ctx *Context) LaneManager() entity.ILaneManager {
	return ctx.laneManager
}

// Intersection 路口仿真环境
func (ctx *Context) Intersection() *junction.Intersection {
	return ctx.intersection
}

// Step 推进一个仿真步并推进时钟
// 返回：本步指标与奖励
func (ctx *Context) Step() entity.StepResult {
	result := ctx.intersection.Step()
	ctx.clock.InternalStep++
	ctx.clock.T += ctx.clock.DT
	return result
}

// Run 执行完整仿真区间[START_STEP, END_STEP)
// 返回：汇总指标
// 说明：按步间隔输出心跳日志，结束时输出汇总日志
func (ctx *Context) Run() Summary {
	c := ctx.clock
	interval := int32(*logStepInterval)
	summary := Summary{}
	for c.InternalStep < c.END_STEP {
		if interval > 0 && (c.InternalStep-c.START_STEP)%interval == 0 {
			log.Infof("step %d (%v): queued=%d processed=%d",
				c.InternalStep, c, ctx.laneManager.TotalQueued(), ctx.intersection.ProcessedTotal())
		}
		result := ctx.Step()
		summary.Steps++
		summary.RewardSum += result.Reward
		summary.AvgWait = result.AvgWait
	}
	summary.Arrived = ctx.intersection.ArrivedTotal()
	summary.Processed = ctx.intersection.ProcessedTotal()
	summary.EmergencyCleared = ctx.intersection.EmergencyTotal()
	summary.Queued = ctx.laneManager.TotalQueued()
	summary.WaitTotal = ctx.intersection.WaitTotal()
	summary.EmissionKg = ctx.intersection.EmissionTotal()
	summary.FuelL = ctx.intersection.FuelTotal()
	if summary.Steps > 0 {
		summary.ThroughputPerMin = float64(summary.Processed) / (float64(summary.Steps) * c.DT / 60)
		summary.RewardMean = summary.RewardSum / float64(summary.Steps)
	}
	log.Infof("simulation finished: steps=%d arrived=%d processed=%d (%.1f/min, %d emergency) queued=%d avg_wait=%.1fs emission=%.3fkg fuel=%.3fL reward_mean=%.3f",
		summary.Steps, summary.Arrived, summary.Processed, summary.ThroughputPerMin,
		summary.EmergencyCleared, summary.Queued,
		summary.AvgWait, summary.EmissionKg, summary.FuelL, summary.RewardMean,
	)
	if h, ok := ctx.intersection.Controller().(*trafficlight.Hybrid); ok && h.Agent() != nil {
		log.Infof("agent: epsilon=%.3f replay=%d", h.Agent().Epsilon(), h.Agent().BufferLen())
	}
	return summary
}

// Reset 重置任务
// 说明：时钟回到起始步，环境与控制器重置；随机数引擎不重置，
// 需要逐位一致的复现时应重新构造上下文
func (ctx *Context) Reset() {
	ctx.clock.Init()
	ctx.intersection.Reset()
}
