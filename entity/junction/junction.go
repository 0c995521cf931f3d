// 路口仿真环境：车辆到达、相位推进、优先放行、指标与奖励计算
package junction

import (
	"math"

	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/entity/vehicle"
	"github.com/citymind-lab/crossim/utils/container"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "junction")

// Intersection 单路口仿真环境
// 功能：驱动一个四方向路口的完整仿真步（到达→决策→相位推进→服务→
// 等待累计→指标→奖励→控制器反馈），维护守恒计数
// 说明：同一时刻只有一个方向持有绿灯
type Intersection struct {
	ctx        entity.ITaskContext
	controller entity.ISignalController

	timing         entity.SignalTiming // 控制器最近一次给出的配时
	green          entity.Direction    // 当前绿灯方向
	greenRemaining float64             // 当前绿灯剩余时长（秒）
	serviceCredit  float64             // 服务额度累计器

	nextVehicleID  int32
	arrivedTotal   int     // 累计到达车辆数
	processedTotal int     // 累计放行车辆数
	emergencyTotal int     // 累计放行紧急车辆数
	waitTotal      float64 // 累计等待车时（辆·秒）
	emissionTotal  float64 // 累计怠速排放（kg CO2）
	fuelTotal      float64 // 累计怠速油耗（L）
	prevAvgWait    float64 // 上一步结束时的平均等待，用于奖励差分
}

// New 创建路口仿真环境
// 参数：ctx-任务上下文，controller-信号控制器
func New(ctx entity.ITaskContext, controller entity.ISignalController) *Intersection {
	return &Intersection{ctx: ctx, controller: controller}
}

// Controller 当前信号控制器
func (j *Intersection) Controller() entity.ISignalController {
	return j.controller
}

// ArrivedTotal 累计到达车辆数
func (j *Intersection) ArrivedTotal() int {
	return j.arrivedTotal
}

// ProcessedTotal 累计放行车辆数
func (j *Intersection) ProcessedTotal() int {
	return j.processedTotal
}

// EmergencyTotal 累计放行紧急车辆数
func (j *Intersection) EmergencyTotal() int {
	return j.emergencyTotal
}

// WaitTotal 累计等待车时（辆·秒）
func (j *Intersection) WaitTotal() float64 {
	return j.waitTotal
}

// EmissionTotal 累计怠速排放（kg CO2）
func (j *Intersection) EmissionTotal() float64 {
	return j.emissionTotal
}

// FuelTotal 累计怠速油耗（L）
func (j *Intersection) FuelTotal() float64 {
	return j.fuelTotal
}

// GreenDirection 当前绿灯方向
func (j *Intersection) GreenDirection() entity.Direction {
	return j.green
}

// Step 推进一个仿真步
// 返回：本步指标与奖励
// 算法说明（严格按序执行）：
// 1. 到达：每车道按泊松分布生成到达数（λ=到达率×dt，带安全上限），
//    车辆类别按(普通,公交,紧急)概率抽取，按到达顺序入队
// 2. 决策：向控制器索取各方向绿灯配时
// 3. 相位推进：绿灯剩余时长递减，到期时按压力最大的方向切换，
//    队列全空时轮转到下一方向，新绿灯时长取自配时
// 4. 服务：服务额度累计器每步增加车道数×dt/单车通过时间，
//    按额度整数部分放行绿灯方向车辆（严格优先级序，同级先到先行）
// 5. 等待累计：所有仍在排队的车辆等待时间增加dt
// 6. 指标：排队长度、怠速排放/油耗估计与守恒计数
// 7. 奖励：多目标加权（等待变化、通行量、排放、紧急放行、排队惩罚）
// 8. 控制器反馈：将本步结果与最新车道状态回传控制器
func (j *Intersection) Step() entity.StepResult {
	dt := j.ctx.Clock().DT
	cfg := j.ctx.RuntimeConfig().All.Intersection
	manager := j.ctx.LaneManager()

	j.generateArrivals(dt)

	states := manager.States()
	j.timing = j.controller.GetSignalTiming(states)
	j.advancePhase(dt, states)

	processed, emergencyCleared := j.serveGreen(dt)
	j.processedTotal += processed
	j.emergencyTotal += emergencyCleared

	manager.AccumulateWait(dt)

	queued := manager.TotalQueued()
	j.waitTotal += float64(queued) * dt
	emission := float64(queued) * cfg.EmissionRatePerHour / 3600 * dt
	fuel := float64(queued) * cfg.FuelRatePerHour / 3600 * dt
	j.emissionTotal += emission
	j.fuelTotal += fuel

	avgWait := manager.AvgWait()
	result := entity.StepResult{
		Processed:        processed,
		EmergencyCleared: emergencyCleared,
		QueueLengths:     manager.QueueLengths(),
		TotalQueued:      queued,
		AvgWait:          avgWait,
		EmissionKg:       emission,
		FuelL:            fuel,
		Reward:           j.computeReward(processed, emergencyCleared, queued, avgWait, emission),
		GreenDirection:   j.green,
	}
	j.prevAvgWait = avgWait

	j.controller.AfterStep(manager.States(), result)
	return result
}

// Reset 重置环境
// 说明：清空所有队列与累计计数，控制器一并重置；随机数引擎不重置
func (j *Intersection) Reset() {
	j.ctx.LaneManager().Reset()
	j.controller.Reset()
	j.timing = entity.SignalTiming{}
	j.green = entity.North
	j.greenRemaining = 0
	j.serviceCredit = 0
	j.arrivedTotal = 0
	j.processedTotal = 0
	j.emergencyTotal = 0
	j.waitTotal = 0
	j.emissionTotal = 0
	j.fuelTotal = 0
	j.prevAvgWait = 0
}

// generateArrivals 生成本步到达车辆
func (j *Intersection) generateArrivals(dt float64) {
	cfg := j.ctx.RuntimeConfig().All.Intersection
	engine := j.ctx.Engine()
	now := j.ctx.Clock().T
	classWeights := []float64{
		1 - cfg.EmergencyProb - cfg.TransitProb,
		cfg.TransitProb,
		cfg.EmergencyProb,
	}
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		for _, l := range j.ctx.LaneManager().Lanes(d) {
			n := engine.Poisson(cfg.BaseArrivalRate*dt, cfg.MaxArrivalsPerStep)
			for i := 0; i < n; i++ {
				class := entity.VehicleClass(engine.DiscreteDistribution(classWeights))
				l.Push(vehicle.New(j.nextVehicleID, class, now))
				j.nextVehicleID++
				j.arrivedTotal++
			}
		}
	}
}

// advancePhase 推进信号相位
// 算法说明：绿灯剩余时长递减dt；到期时以方向压力（排队数×类别权重）
// 建最大堆选取下一绿灯方向，全空时轮转；新时长取控制器配时
func (j *Intersection) advancePhase(dt float64, states []entity.LaneState) {
	j.greenRemaining -= dt
	if j.greenRemaining > 0 {
		return
	}

	var pressures [entity.DirectionCount]float64
	for _, s := range states {
		pressures[s.Direction] += s.Density * (1 + float64(s.MaxClass))
	}

	pq := container.NewPriorityQueue[entity.Direction]()
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		if pressures[d] > 0 {
			pq.Push(d, -pressures[d]) // 最小堆取负实现最大压力优先
		}
	}
	if pq.Len() > 0 {
		pq.Heapify()
		next, _ := pq.HeapPop()
		j.green = next
	} else {
		j.green = (j.green + 1) % entity.DirectionCount
	}
	j.greenRemaining = j.timing[j.green]
	j.serviceCredit = 0
	log.Debugf("phase switched to %s for %.0fs", j.green, j.greenRemaining)
}

// serveGreen 放行绿灯方向车辆
// 返回：本步放行总数与其中紧急车辆数
// 算法说明：服务额度累计器每步增加车道数×dt/单车通过时间，
// 每消耗1.0额度放行一辆；放行次序为跨车道严格优先级序，
// 同级按到达时刻先后（稳定）；完整相位内总放行量等于
// floor(绿灯时长/单车通过时间)×车道数
func (j *Intersection) serveGreen(dt float64) (processed, emergencyCleared int) {
	cfg := j.ctx.RuntimeConfig().All.Intersection
	lanes := j.ctx.LaneManager().Lanes(j.green)

	j.serviceCredit += float64(len(lanes)) * dt / cfg.VehicleClearTime
	for j.serviceCredit >= 1 {
		v := j.popBestAcross(lanes)
		if v == nil {
			break
		}
		j.serviceCredit--
		v.MarkPassed()
		processed++
		if v.Class() == entity.VehicleClassEmergency {
			emergencyCleared++
		}
	}
	return
}

// popBestAcross 在多条车道间弹出优先级最高、到达最早的车辆
// 返回：全部车道为空时返回nil
func (j *Intersection) popBestAcross(lanes []entity.ILane) entity.IVehicle {
	var bestLane entity.ILane
	var best entity.IVehicle
	for _, l := range lanes {
		v := l.PeekBest()
		if v == nil {
			continue
		}
		if best == nil || v.Class() > best.Class() ||
			(v.Class() == best.Class() && v.ArrivalTime() < best.ArrivalTime()) {
			best, bestLane = v, l
		}
	}
	if bestLane == nil {
		return nil
	}
	return bestLane.PopBest()
}

// computeReward 计算本步多目标奖励
// 说明：权重全部来自配置；等待与排放取变化量的负向贡献，
// 排队数超过阈值的部分施加线性惩罚
func (j *Intersection) computeReward(processed, emergencyCleared, queued int, avgWait, emission float64) float64 {
	w := j.ctx.RuntimeConfig().All.Reward
	r := w.Wait * -(avgWait - j.prevAvgWait)
	r += w.Throughput * float64(processed)
	r -= w.Emission * emission
	r += w.EmergencyBonus * float64(emergencyCleared)
	if w.QueuePenalty > 0 {
		r -= w.QueuePenalty * math.Max(0, float64(queued)-w.QueueThreshold)
	}
	return r
}
