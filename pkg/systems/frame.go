package systems

import "github.com/gonewx/dermamon/pkg/config"

// framesFor 将秒数换算为以 60 TPS 为基准的帧数
// 速度、衰减等参数以“每帧”为单位，乘以该值后与实际帧率无关
func framesFor(dt float64) float64 {
	return dt / config.FrameDuration
}
