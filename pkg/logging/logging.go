// Package logging 构造全局使用的 zap 日志器。
package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New 按运行模式构造 SugaredLogger。
// mode 为 "prod"/"production" 时使用 JSON 生产配置，否则使用开发配置。
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Nop 返回丢弃一切输出的日志器，库场景下未注入日志时使用。
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
