package utils

// Mean 计算浮点切片的平均值。
// 空切片返回0而不是NaN，
// 用于空队列方向的等待时间统计。
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
