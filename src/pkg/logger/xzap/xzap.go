package xzap

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	Mode     string `toml:"mode" mapstructure:"mode" json:"mode"`             // 输出模式: console / file
	Path     string `toml:"path" mapstructure:"path" json:"path"`             // 日志文件目录 (file 模式)
	Level    string `toml:"level" mapstructure:"level" json:"level"`          // 日志级别: debug / info / warn / error
	Compress bool   `toml:"compress" mapstructure:"compress" json:"compress"` // 是否压缩历史日志
	KeepDays int    `toml:"keep_days" mapstructure:"keep_days" json:"keep_days"`
	MaxSize  int    `toml:"max_size" mapstructure:"max_size" json:"max_size"` // 单文件最大体积(MB)
}

var (
	once   sync.Once
	global *zap.Logger
)

// SetUp 初始化全局日志实例
// console 模式输出到标准输出, file 模式通过 lumberjack 滚动写文件
// 重复调用只生效一次
func SetUp(c Config) (*zap.Logger, error) {
	var err error
	once.Do(func() {
		global, err = build(c)
	})
	if err != nil {
		return nil, err
	}
	return global, nil
}

func build(c Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.Set(c.Level); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var ws zapcore.WriteSyncer
	if c.Mode == "file" && c.Path != "" {
		maxSize := c.MaxSize
		if maxSize == 0 {
			maxSize = 100
		}
		// 文件模式: lumberjack 负责滚动与过期清理
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(c.Path, "app.log"),
			MaxSize:  maxSize,
			MaxAge:   c.KeepDays,
			Compress: c.Compress,
		})
	} else {
		ws = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	return zap.New(core, zap.AddCaller()), nil
}

// WithContext 获取绑定上下文的日志实例
// 目前未从 ctx 中提取字段, 预留给 trace id 透传
func WithContext(_ context.Context) *zap.Logger {
	if global == nil {
		// 未经 SetUp 直接使用时退化为标准输出, 避免空指针
		global, _ = build(Config{Mode: "console"})
	}
	return global
}
