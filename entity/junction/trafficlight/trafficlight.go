// 信号控制器：固定配时、模糊推理与混合学习三种变体
package trafficlight

import (
	"github.com/citymind-lab/crossim/entity"
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "trafficlight")

// New 按信控模式创建控制器
// 参数：ctx-任务上下文
// 返回：与control.mode对应的控制器实现
// 说明：模式合法性已在配置校验阶段保证；混合模式下智能体被禁用时
// 退化为纯模糊推理
func New(ctx entity.ITaskContext) entity.ISignalController {
	mode := ctx.RuntimeConfig().C.Mode
	switch mode {
	case config.ModeFuzzy:
		return NewFuzzyControl(ctx)
	case config.ModeHybrid:
		return NewHybrid(ctx)
	default:
		return NewFixedTime(ctx)
	}
}
