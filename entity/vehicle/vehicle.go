package vehicle

import (
	"fmt"

	"github.com/citymind-lab/crossim/entity"
)

// Vehicle 车辆实体
// 功能：表示到达路口排队的单个车辆，记录类别、到达时刻与累计等待
// 说明：车辆由环境在到达抽取时创建，被放行时标记通过并脱离队列
type Vehicle struct {
	id          int32
	class       entity.VehicleClass
	arrivalTime float64 // 到达时刻（仿真时间，秒）
	waitTime    float64 // 累计等待时间（秒），不做上限截断
	passed      bool    // 是否已通过路口
}

// New 创建车辆
// 参数：id-车辆ID，class-优先级类别，arrivalTime-到达时刻
// 返回：初始化完成的车辆实例
func New(id int32, class entity.VehicleClass, arrivalTime float64) *Vehicle {
	return &Vehicle{
		id:          id,
		class:       class,
		arrivalTime: arrivalTime,
	}
}

func (v *Vehicle) ID() int32 {
	return v.id
}

func (v *Vehicle) Class() entity.VehicleClass {
	return v.class
}

func (v *Vehicle) ArrivalTime() float64 {
	return v.arrivalTime
}

func (v *Vehicle) WaitTime() float64 {
	return v.waitTime
}

func (v *Vehicle) Passed() bool {
	return v.passed
}

// AccumulateWait 累计等待时间
// 参数：dt-时间步长
// 说明：已通过的车辆不再累计
func (v *Vehicle) AccumulateWait(dt float64) {
	if !v.passed {
		v.waitTime += dt
	}
}

// MarkPassed 标记车辆已通过路口
func (v *Vehicle) MarkPassed() {
	v.passed = true
}

func (v *Vehicle) String() string {
	return fmt.Sprintf(
		"Vehicle{id=%d, class=%v, arrival=%.1f, wait=%.1f, passed=%v}",
		v.id, v.class, v.arrivalTime, v.waitTime, v.passed,
	)
}
