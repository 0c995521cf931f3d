package entity

import (
	"github.com/citymind-lab/crossim/clock"
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/citymind-lab/crossim/utils/randengine"
)

// ITaskContext 仿真任务上下文接口
// 说明：所有实体通过上下文访问时钟、随机数引擎与运行时配置，
// 随机数引擎在构造时注入一次，保证可复现性
type ITaskContext interface {
	Clock() *clock.Clock
	Engine() *randengine.Engine
	RuntimeConfig() *config.RuntimeConfig
	LaneManager() ILaneManager
}
