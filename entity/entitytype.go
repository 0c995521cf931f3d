package entity

import "fmt"

// VehicleClass 车辆优先级类别
type VehicleClass int32

// 车辆类别常量
const (
	VehicleClassRegular   VehicleClass = 0 // 普通车辆
	VehicleClassTransit   VehicleClass = 1 // 公交车辆
	VehicleClassEmergency VehicleClass = 2 // 紧急车辆
)

func (c VehicleClass) String() string {
	switch c {
	case VehicleClassRegular:
		return "regular"
	case VehicleClassTransit:
		return "transit"
	case VehicleClassEmergency:
		return "emergency"
	default:
		return fmt.Sprintf("VehicleClass(%d)", int32(c))
	}
}

// Direction 路口进口方向
type Direction int32

// 方向常量
const (
	North Direction = 0 // 北进口
	East  Direction = 1 // 东进口
	South Direction = 2 // 南进口
	West  Direction = 3 // 西进口

	DirectionCount = 4 // 方向数
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", int32(d))
	}
}

// SignalTiming 每个方向的绿灯时长建议（秒）
// 说明：所有控制器输出均在绿灯时长边界[fuzzy.GreenMin, fuzzy.GreenMax]内
type SignalTiming [DirectionCount]float64

// LaneState 车道状态快照
// 功能：向控制器暴露的只读车道状态，不允许控制器直接修改队列
type LaneState struct {
	Direction Direction    // 所属方向
	Index     int          // 方向内车道索引
	Density   float64      // 排队车辆数
	AvgWait   float64      // 队列平均等待时间（秒，空队列为0）
	MaxClass  VehicleClass // 队列中最高优先级类别
}

// StepResult 单步仿真结果
// 功能：环境每步产出的指标与奖励，供控制器/智能体与外部消费方使用
type StepResult struct {
	Processed        int                    // 本步放行车辆数
	EmergencyCleared int                    // 本步放行紧急车辆数
	QueueLengths     [DirectionCount]int    // 各方向排队长度
	TotalQueued      int                    // 总排队数
	AvgWait          float64                // 当前排队车辆平均等待（秒）
	EmissionKg       float64                // 本步怠速排放估计（kg CO2）
	FuelL            float64                // 本步怠速油耗估计（L）
	Reward           float64                // 本步奖励（仅学习智能体消费）
	GreenDirection   Direction              // 本步持有绿灯的方向
}

// IVehicle entity/vehicle/vehicle.go的依赖倒置
type IVehicle interface {
	ID() int32             // 获取车辆ID
	Class() VehicleClass   // 获取车辆优先级类别
	ArrivalTime() float64  // 获取到达时刻
	WaitTime() float64     // 获取累计等待时间
	Passed() bool          // 判断车辆是否已通过路口
	AccumulateWait(dt float64)
	MarkPassed()
}

// ILane entity/lane/lane.go的依赖倒置
type ILane interface {
	Direction() Direction // 所属方向
	Index() int           // 方向内车道索引
	Len() int             // 排队长度

	Push(v IVehicle)           // 车辆入队（到达顺序）
	PeekBest() IVehicle        // 查看队列中优先级最高、到达最早的车辆，空队列返回nil
	PopBest() IVehicle         // 弹出队列中优先级最高、到达最早的车辆，空队列返回nil
	AccumulateWait(dt float64) // 所有排队车辆累计等待时间
	State() LaneState          // 生成状态快照
	Reset()                    // 清空队列
}

// ILaneManager entity/lane/manager.go的依赖倒置
type ILaneManager interface {
	Init() // 初始化

	Lanes(d Direction) []ILane // 获取指定方向的车道列表
	States() []LaneState       // 获取所有车道状态快照（方向序）
	TotalQueued() int          // 总排队数
	QueueLengths() [DirectionCount]int
	AvgWait() float64          // 所有排队车辆的平均等待（空为0）
	AccumulateWait(dt float64) // 所有排队车辆累计等待时间
	Reset()                    // 清空所有队列
}

// ISignalController 信号控制器接口
// 说明：固定配时/模糊/混合三种变体通过配置选择，多态实现本接口；
// 环境每步先调用GetSignalTiming获取配时，完成服务与指标计算后调用AfterStep反馈
type ISignalController interface {
	Name() string // 控制器名称

	// 根据车道状态给出各方向绿灯时长建议，输出均在绿灯时长边界内
	GetSignalTiming(states []LaneState) SignalTiming
	// 环境步结束后的反馈回调，states为本步结束时的车道状态
	AfterStep(states []LaneState, result StepResult)
	// 重置控制器内部状态
	Reset()
}
